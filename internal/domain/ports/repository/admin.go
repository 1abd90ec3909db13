package repository

import (
	"context"

	"guestpass/internal/domain/model"
)

// AdminAccountRepository is the port for the credential store.
type AdminAccountRepository interface {
	// Create persists a new admin account. Returns domain.ErrAlreadyExists
	// when the username is taken.
	Create(ctx context.Context, tx Tx, admin *model.AdminAccount) error
	// FindByUsername returns domain.ErrNotFound for unknown usernames.
	FindByUsername(ctx context.Context, tx Tx, username string) (*model.AdminAccount, error)
}
