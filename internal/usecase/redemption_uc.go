// File: internal/usecase/redemption_uc.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"guestpass/internal/domain"
	"guestpass/internal/domain/ports/repository"
	"guestpass/internal/infra/metrics"
)

// RedemptionStatus is the terminal outcome of presenting a token string at
// the checkpoint.
type RedemptionStatus int

const (
	// RedemptionInvalid: the token string was never issued.
	RedemptionInvalid RedemptionStatus = iota
	// RedemptionAlreadyUsed: the token was consumed before. Expected state,
	// not a fault.
	RedemptionAlreadyUsed
	// RedemptionSuccess: this call consumed the token.
	RedemptionSuccess
)

// RedemptionResult carries the guest's display details only on success; the
// already-used and invalid paths disclose nothing.
type RedemptionResult struct {
	Status        RedemptionStatus
	GuestName     string
	ContactHandle string
	RedeemedAt    time.Time
}

// RedemptionUseCase consumes admission tokens. A token moves ISSUED ->
// REDEEMED exactly once; there are no other transitions.
type RedemptionUseCase struct {
	tokens   repository.AdmissionTokenRepository
	requests repository.AccessRequestRepository
	log      *zerolog.Logger
}

func NewRedemptionUseCase(
	tokens repository.AdmissionTokenRepository,
	requests repository.AccessRequestRepository,
	logger *zerolog.Logger,
) *RedemptionUseCase {
	return &RedemptionUseCase{tokens: tokens, requests: requests, log: logger}
}

// Redeem attempts the one-time consumption of tokenString. The used-flag
// transition is a single compare-and-set in the repository, so two racing
// calls resolve to exactly one Success and one AlreadyUsed.
func (uc *RedemptionUseCase) Redeem(ctx context.Context, tokenString string) (*RedemptionResult, error) {
	token, err := uc.tokens.Consume(ctx, nil, tokenString)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			metrics.IncRedemption("invalid")
			return &RedemptionResult{Status: RedemptionInvalid}, nil
		case errors.Is(err, domain.ErrAlreadyUsed):
			metrics.IncRedemption("already_used")
			return &RedemptionResult{Status: RedemptionAlreadyUsed}, nil
		default:
			metrics.IncRedemption("error")
			return nil, err
		}
	}

	req, err := uc.requests.FindByID(ctx, nil, token.RequestID)
	if err != nil {
		// The token row references a ledger entry that must exist; surface
		// the inconsistency rather than show an empty confirmation.
		uc.log.Error().Err(err).Str("token_id", token.ID).Msg("redeemed token has no request")
		return nil, err
	}

	metrics.IncRedemption("success")
	uc.log.Info().Str("request_id", req.ID).Msg("admission token redeemed")
	return &RedemptionResult{
		Status:        RedemptionSuccess,
		GuestName:     req.DisplayName(),
		ContactHandle: req.ContactHandle,
		RedeemedAt:    *token.UsedAt,
	}, nil
}
