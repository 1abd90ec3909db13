// File: internal/usecase/request_uc.go
package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"guestpass/internal/domain"
	"guestpass/internal/domain/model"
	"guestpass/internal/domain/ports/repository"
	"guestpass/internal/infra/metrics"
)

// RequestUseCase implements the request ledger operations: guests submit
// requests, admins list and inspect them.
type RequestUseCase struct {
	requests repository.AccessRequestRepository
}

func NewRequestUseCase(requests repository.AccessRequestRepository) *RequestUseCase {
	return &RequestUseCase{requests: requests}
}

// Submit validates the guest's input and persists a pending request.
// Repeated submissions by the same person are not deduplicated.
func (uc *RequestUseCase) Submit(ctx context.Context, firstName, lastName, email, contactHandle string) (*model.AccessRequest, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)
	contactHandle = strings.TrimSpace(contactHandle)

	if firstName == "" || lastName == "" {
		return nil, domain.ErrInvalidArgument
	}
	if !validEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	req := &model.AccessRequest{
		ID:            ulid.Make().String(),
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		ContactHandle: contactHandle,
		Approved:      false,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.requests.Create(ctx, nil, req); err != nil {
		return nil, err
	}
	metrics.IncAccessRequest()
	return req, nil
}

func (uc *RequestUseCase) ListPending(ctx context.Context) ([]*model.AccessRequest, error) {
	return uc.requests.ListPending(ctx, nil)
}

// ListAll returns every request, newest first.
func (uc *RequestUseCase) ListAll(ctx context.Context) ([]*model.AccessRequest, error) {
	return uc.requests.ListAll(ctx, nil)
}

func (uc *RequestUseCase) Get(ctx context.Context, id string) (*model.AccessRequest, error) {
	return uc.requests.FindByID(ctx, nil, id)
}

// validEmail accepts a bare addr-spec only; display names ("A <a@b>") and
// empty strings are rejected.
func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}
