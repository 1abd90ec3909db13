package repository

import (
	"context"
	"time"

	"guestpass/internal/domain/model"
)

// AccessRequestRepository is the port for the request ledger. The ledger is
// append-and-approve only: requests are never deleted.
type AccessRequestRepository interface {
	Create(ctx context.Context, tx Tx, req *model.AccessRequest) error
	// FindByID returns domain.ErrNotFound for unknown ids.
	FindByID(ctx context.Context, tx Tx, id string) (*model.AccessRequest, error)
	// FindByIDForUpdate locks the row for the duration of the surrounding
	// transaction. Callers must pass a live tx.
	FindByIDForUpdate(ctx context.Context, tx Tx, id string) (*model.AccessRequest, error)
	// MarkApproved sets approved=true and approved_at. It does not guard
	// against double approval; that is the approval workflow's job under
	// the row lock.
	MarkApproved(ctx context.Context, tx Tx, id string, at time.Time) error
	ListPending(ctx context.Context, tx Tx) ([]*model.AccessRequest, error)
	// ListAll returns requests ordered by creation time, newest first.
	ListAll(ctx context.Context, tx Tx) ([]*model.AccessRequest, error)
}
