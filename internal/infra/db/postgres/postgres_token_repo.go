package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"guestpass/internal/domain"
	"guestpass/internal/domain/model"
	"guestpass/internal/domain/ports/repository"
)

var _ repository.AdmissionTokenRepository = (*admissionTokenRepo)(nil)

type admissionTokenRepo struct {
	pool *pgxpool.Pool
}

func NewAdmissionTokenRepo(pool *pgxpool.Pool) repository.AdmissionTokenRepository {
	return &admissionTokenRepo{pool: pool}
}

const tokenColumns = `id, token, request_id, used, used_at, created_at`

func (r *admissionTokenRepo) Insert(ctx context.Context, tx repository.Tx, token *model.AdmissionToken) error {
	const q = `
INSERT INTO admission_tokens (id, token, request_id, used, used_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6);
`
	_, err := execSQL(ctx, r.pool, tx, q,
		token.ID, token.Token, token.RequestID, token.Used, token.UsedAt, token.CreatedAt,
	)
	return err
}

func (r *admissionTokenRepo) FindByRequestID(ctx context.Context, tx repository.Tx, requestID string) (*model.AdmissionToken, error) {
	const q = `SELECT ` + tokenColumns + ` FROM admission_tokens WHERE request_id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, requestID)
	if err != nil {
		return nil, err
	}
	return scanToken(row)
}

// Consume flips used in a single UPDATE guarded by used=FALSE, so the
// transition is atomic: of two racing calls exactly one sees a row returned.
// A miss is classified afterwards; token rows are never deleted, so a token
// that exists on the second read lost the race (or was consumed earlier).
func (r *admissionTokenRepo) Consume(ctx context.Context, tx repository.Tx, tokenString string) (*model.AdmissionToken, error) {
	const cas = `
UPDATE admission_tokens
   SET used = TRUE, used_at = now()
 WHERE token = $1 AND used = FALSE
RETURNING ` + tokenColumns + `;
`
	row, err := pickRow(ctx, r.pool, tx, cas, tokenString)
	if err != nil {
		return nil, err
	}
	t, err := scanToken(row)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	const probe = `SELECT used FROM admission_tokens WHERE token = $1;`
	row, err = pickRow(ctx, r.pool, tx, probe, tokenString)
	if err != nil {
		return nil, err
	}
	var used bool
	if err := row.Scan(&used); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return nil, domain.ErrAlreadyUsed
}

func scanToken(row pgx.Row) (*model.AdmissionToken, error) {
	var t model.AdmissionToken
	err := row.Scan(&t.ID, &t.Token, &t.RequestID, &t.Used, &t.UsedAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
