// File: internal/usecase/auth_uc.go
package usecase

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"guestpass/internal/domain"
	"guestpass/internal/domain/model"
	"guestpass/internal/domain/ports/repository"
)

// dummyHash is compared against when the username does not exist, so the
// not-found and wrong-password paths cost the same.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthUseCase verifies administrator credentials against the credential store.
type AuthUseCase struct {
	admins repository.AdminAccountRepository
}

func NewAuthUseCase(admins repository.AdminAccountRepository) *AuthUseCase {
	return &AuthUseCase{admins: admins}
}

// Authenticate returns the account when username and password match, and
// domain.ErrInvalidCredentials otherwise. It does not reveal whether the
// username or the password was wrong.
func (uc *AuthUseCase) Authenticate(ctx context.Context, username, password string) (*model.AdminAccount, error) {
	admin, err := uc.admins.FindByUsername(ctx, nil, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return admin, nil
}

// HashPassword produces the stored bcrypt hash for a new admin account. The
// cost keeps verification in the tens-of-milliseconds range.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
