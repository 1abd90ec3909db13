package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"guestpass/internal/domain"
	"guestpass/internal/domain/model"
	"guestpass/internal/domain/ports/repository"
)

var _ repository.AccessRequestRepository = (*accessRequestRepo)(nil)

type accessRequestRepo struct {
	pool *pgxpool.Pool
}

func NewAccessRequestRepo(pool *pgxpool.Pool) repository.AccessRequestRepository {
	return &accessRequestRepo{pool: pool}
}

const requestColumns = `id, first_name, last_name, email, contact_handle, approved, created_at, approved_at`

func (r *accessRequestRepo) Create(ctx context.Context, tx repository.Tx, req *model.AccessRequest) error {
	const q = `
INSERT INTO access_requests (id, first_name, last_name, email, contact_handle, approved, created_at, approved_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err := execSQL(ctx, r.pool, tx, q,
		req.ID, req.FirstName, req.LastName, req.Email, req.ContactHandle, req.Approved, req.CreatedAt, req.ApprovedAt,
	)
	return err
}

func (r *accessRequestRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.AccessRequest, error) {
	return r.findByID(ctx, tx, id, false)
}

func (r *accessRequestRepo) FindByIDForUpdate(ctx context.Context, tx repository.Tx, id string) (*model.AccessRequest, error) {
	return r.findByID(ctx, tx, id, true)
}

func (r *accessRequestRepo) findByID(ctx context.Context, tx repository.Tx, id string, forUpdate bool) (*model.AccessRequest, error) {
	q := `SELECT ` + requestColumns + ` FROM access_requests WHERE id = $1`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanRequest(row)
}

func (r *accessRequestRepo) MarkApproved(ctx context.Context, tx repository.Tx, id string, at time.Time) error {
	const q = `UPDATE access_requests SET approved = TRUE, approved_at = $2 WHERE id = $1;`
	tag, err := execSQL(ctx, r.pool, tx, q, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accessRequestRepo) ListPending(ctx context.Context, tx repository.Tx) ([]*model.AccessRequest, error) {
	const q = `SELECT ` + requestColumns + ` FROM access_requests WHERE approved = FALSE ORDER BY created_at ASC;`
	return r.list(ctx, tx, q)
}

func (r *accessRequestRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.AccessRequest, error) {
	const q = `SELECT ` + requestColumns + ` FROM access_requests ORDER BY created_at DESC;`
	return r.list(ctx, tx, q)
}

func (r *accessRequestRepo) list(ctx context.Context, tx repository.Tx, q string) ([]*model.AccessRequest, error) {
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.AccessRequest
	for rows.Next() {
		var req model.AccessRequest
		if err := rows.Scan(&req.ID, &req.FirstName, &req.LastName, &req.Email, &req.ContactHandle, &req.Approved, &req.CreatedAt, &req.ApprovedAt); err != nil {
			return nil, err
		}
		out = append(out, &req)
	}
	return out, rows.Err()
}

func scanRequest(row pgx.Row) (*model.AccessRequest, error) {
	var req model.AccessRequest
	err := row.Scan(&req.ID, &req.FirstName, &req.LastName, &req.Email, &req.ContactHandle, &req.Approved, &req.CreatedAt, &req.ApprovedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}
