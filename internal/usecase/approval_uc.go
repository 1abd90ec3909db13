// File: internal/usecase/approval_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"guestpass/internal/domain"
	"guestpass/internal/domain/model"
	"guestpass/internal/domain/ports/adapter"
	"guestpass/internal/domain/ports/repository"
	"guestpass/internal/infra/metrics"
)

// ApprovalUseCase bridges the request ledger and the token registry: it is
// the only writer that links the two, and it does so in one transaction.
type ApprovalUseCase struct {
	requests repository.AccessRequestRepository
	tokens   repository.AdmissionTokenRepository
	txm      repository.TransactionManager
	notifier adapter.Notifier
	imager   adapter.CodeImager
	baseURL  string
	log      *zerolog.Logger
}

func NewApprovalUseCase(
	requests repository.AccessRequestRepository,
	tokens repository.AdmissionTokenRepository,
	txm repository.TransactionManager,
	notifier adapter.Notifier,
	imager adapter.CodeImager,
	baseURL string,
	logger *zerolog.Logger,
) *ApprovalUseCase {
	return &ApprovalUseCase{
		requests: requests,
		tokens:   tokens,
		txm:      txm,
		notifier: notifier,
		imager:   imager,
		baseURL:  baseURL,
		log:      logger,
	}
}

// Approve marks the request approved and issues its admission token in a
// single transaction. Approving an already-approved request is idempotent:
// the existing token is returned and no second one is minted. The guest is
// notified after the transaction commits; delivery failure leaves the
// approval intact.
func (uc *ApprovalUseCase) Approve(ctx context.Context, requestID string) (*model.AccessRequest, *model.AdmissionToken, error) {
	var (
		req   *model.AccessRequest
		token *model.AdmissionToken
		fresh bool
	)

	err := uc.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		r, err := uc.requests.FindByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}

		if r.Approved {
			// Row lock held: the token for this request is final.
			t, err := uc.tokens.FindByRequestID(ctx, tx, r.ID)
			if err != nil {
				return fmt.Errorf("approved request %s has no token: %w", r.ID, err)
			}
			req, token = r, t
			return nil
		}

		now := time.Now().UTC()
		if err := uc.requests.MarkApproved(ctx, tx, r.ID, now); err != nil {
			return err
		}
		r.Approved = true
		r.ApprovedAt = &now

		t := &model.AdmissionToken{
			ID:        ulid.Make().String(),
			Token:     uuid.NewString(),
			RequestID: r.ID,
			Used:      false,
			CreatedAt: now,
		}
		if err := uc.tokens.Insert(ctx, tx, t); err != nil {
			return err
		}
		req, token, fresh = r, t, true
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.IncApproval("not_found")
			return nil, nil, domain.ErrNotFound
		}
		metrics.IncApproval("error")
		return nil, nil, err
	}

	if fresh {
		metrics.IncApproval("issued")
		uc.notify(ctx, req, token)
	} else {
		metrics.IncApproval("repeat")
	}
	return req, token, nil
}

// notify runs outside the transaction. Failure is logged and counted; the
// approval stands and the guest can still use the fallback link.
func (uc *ApprovalUseCase) notify(ctx context.Context, req *model.AccessRequest, token *model.AdmissionToken) {
	fallbackURL := fmt.Sprintf("%s/redeem/%s", uc.baseURL, token.Token)

	png, err := uc.imager.Image(token.Token)
	if err != nil {
		metrics.IncNotification("image_error")
		uc.log.Error().Err(err).Str("request_id", req.ID).Msg("render admission code image")
		return
	}

	if err := uc.notifier.SendAdmission(ctx, req.Email, req.DisplayName(), png, fallbackURL); err != nil {
		metrics.IncNotification("failure")
		uc.log.Error().Err(err).Str("request_id", req.ID).Msg("deliver admission notification")
		return
	}
	metrics.IncNotification("success")
	uc.log.Info().Str("request_id", req.ID).Msg("admission notification delivered")
}
