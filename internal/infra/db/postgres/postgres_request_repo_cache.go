package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"guestpass/internal/domain/model"
	"guestpass/internal/domain/ports/repository"
	"guestpass/internal/infra/metrics"
	red "guestpass/internal/infra/redis"
)

var _ repository.AccessRequestRepository = (*requestRepoCacheDecorator)(nil)

// requestRepoCacheDecorator is a read-through cache over request-by-id
// lookups (hot on the redemption confirmation page). List reads and locked
// reads always go to the database.
type requestRepoCacheDecorator struct {
	inner repository.AccessRequestRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewRequestRepoCacheDecorator(inner repository.AccessRequestRepository, cache red.RedisClient, ttl time.Duration) repository.AccessRequestRepository {
	return &requestRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func requestKey(id string) string { return fmt.Sprintf("request:id:%s", id) }

func (d *requestRepoCacheDecorator) Create(ctx context.Context, tx repository.Tx, req *model.AccessRequest) error {
	_ = d.cache.Del(ctx, requestKey(req.ID))
	return d.inner.Create(ctx, tx, req)
}

func (d *requestRepoCacheDecorator) MarkApproved(ctx context.Context, tx repository.Tx, id string, at time.Time) error {
	_ = d.cache.Del(ctx, requestKey(id))
	return d.inner.MarkApproved(ctx, tx, id, at)
}

func (d *requestRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.AccessRequest, error) {
	if tx == nil {
		if val, err := d.cache.Get(ctx, requestKey(id)); err == nil {
			var req model.AccessRequest
			if json.Unmarshal([]byte(val), &req) == nil {
				metrics.IncCacheRequest("request", "hit")
				return &req, nil
			}
		}
		metrics.IncCacheRequest("request", "miss")
	}

	req, err := d.inner.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		if b, err := json.Marshal(req); err == nil {
			_ = d.cache.Set(ctx, requestKey(id), b, d.ttl)
		}
	}
	return req, nil
}

// FindByIDForUpdate must observe committed row state; never served from cache.
func (d *requestRepoCacheDecorator) FindByIDForUpdate(ctx context.Context, tx repository.Tx, id string) (*model.AccessRequest, error) {
	return d.inner.FindByIDForUpdate(ctx, tx, id)
}

func (d *requestRepoCacheDecorator) ListPending(ctx context.Context, tx repository.Tx) ([]*model.AccessRequest, error) {
	return d.inner.ListPending(ctx, tx)
}

func (d *requestRepoCacheDecorator) ListAll(ctx context.Context, tx repository.Tx) ([]*model.AccessRequest, error) {
	return d.inner.ListAll(ctx, tx)
}
