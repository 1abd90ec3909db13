package repository

import (
	"context"

	"guestpass/internal/domain/model"
)

// AdmissionTokenRepository is the port for the token registry.
type AdmissionTokenRepository interface {
	Insert(ctx context.Context, tx Tx, token *model.AdmissionToken) error
	// FindByRequestID returns the token issued for a request, or
	// domain.ErrNotFound when none has been issued yet.
	FindByRequestID(ctx context.Context, tx Tx, requestID string) (*model.AdmissionToken, error)
	// Consume atomically flips used=false -> used=true and returns the
	// consumed token. The flip must be a single compare-and-set: when two
	// calls race on one token, exactly one wins. Returns
	// domain.ErrAlreadyUsed when the token was consumed before, and
	// domain.ErrNotFound when the token string was never issued.
	Consume(ctx context.Context, tx Tx, tokenString string) (*model.AdmissionToken, error)
}
