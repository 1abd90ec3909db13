package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"guestpass/internal/domain"
	"guestpass/internal/domain/model"
	"guestpass/internal/domain/ports/repository"
)

// Ensure implementation satisfies the interface.
var _ repository.AdminAccountRepository = (*adminAccountRepo)(nil)

type adminAccountRepo struct {
	pool *pgxpool.Pool
}

func NewAdminAccountRepo(pool *pgxpool.Pool) repository.AdminAccountRepository {
	return &adminAccountRepo{pool: pool}
}

func (r *adminAccountRepo) Create(ctx context.Context, tx repository.Tx, admin *model.AdminAccount) error {
	const q = `
INSERT INTO admin_accounts (id, username, password_hash, created_at)
VALUES ($1, $2, $3, $4);
`
	_, err := execSQL(ctx, r.pool, tx, q, admin.ID, admin.Username, admin.PasswordHash, admin.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *adminAccountRepo) FindByUsername(ctx context.Context, tx repository.Tx, username string) (*model.AdminAccount, error) {
	const q = `
SELECT id, username, password_hash, created_at
  FROM admin_accounts
 WHERE username = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, username)
	if err != nil {
		return nil, err
	}

	var a model.AdminAccount
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
