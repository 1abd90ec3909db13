//go:build !integration

package web

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"guestpass/internal/domain"
	"guestpass/internal/domain/model"
	"guestpass/internal/domain/ports/repository"
	"guestpass/internal/usecase"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// In-memory ports for handler tests, same shape as the usecase package mocks.

type memRequestRepo struct {
	mu    sync.RWMutex
	store map[string]*model.AccessRequest
	order []string
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{store: make(map[string]*model.AccessRequest)}
}

func (m *memRequestRepo) Create(_ context.Context, _ repository.Tx, req *model.AccessRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *req
	m.store[req.ID] = &cp
	m.order = append(m.order, req.ID)
	return nil
}

func (m *memRequestRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.AccessRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRequestRepo) FindByIDForUpdate(ctx context.Context, tx repository.Tx, id string) (*model.AccessRequest, error) {
	return m.FindByID(ctx, tx, id)
}

func (m *memRequestRepo) MarkApproved(_ context.Context, _ repository.Tx, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Approved = true
	t := at
	r.ApprovedAt = &t
	return nil
}

func (m *memRequestRepo) ListPending(_ context.Context, _ repository.Tx) ([]*model.AccessRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.AccessRequest
	for _, id := range m.order {
		if r := m.store[id]; !r.Approved {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memRequestRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.AccessRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.AccessRequest, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		cp := *m.store[m.order[i]]
		out = append(out, &cp)
	}
	return out, nil
}

type memTokenRepo struct {
	mu        sync.Mutex
	byToken   map[string]*model.AdmissionToken
	byRequest map[string]*model.AdmissionToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{
		byToken:   make(map[string]*model.AdmissionToken),
		byRequest: make(map[string]*model.AdmissionToken),
	}
}

func (m *memTokenRepo) Insert(_ context.Context, _ repository.Tx, token *model.AdmissionToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byRequest[token.RequestID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *token
	m.byToken[token.Token] = &cp
	m.byRequest[token.RequestID] = &cp
	return nil
}

func (m *memTokenRepo) FindByRequestID(_ context.Context, _ repository.Tx, requestID string) (*model.AdmissionToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byRequest[requestID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTokenRepo) Consume(_ context.Context, _ repository.Tx, tokenString string) (*model.AdmissionToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byToken[tokenString]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if t.Used {
		return nil, domain.ErrAlreadyUsed
	}
	now := time.Now().UTC()
	t.Used = true
	t.UsedAt = &now
	cp := *t
	return &cp, nil
}

type memAdminRepo struct {
	mu    sync.RWMutex
	store map[string]*model.AdminAccount
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{store: make(map[string]*model.AdminAccount)}
}

func (m *memAdminRepo) Create(_ context.Context, _ repository.Tx, admin *model.AdminAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[admin.Username]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *admin
	m.store[admin.Username] = &cp
	return nil
}

func (m *memAdminRepo) FindByUsername(_ context.Context, _ repository.Tx, username string) (*model.AdminAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

type memTxManager struct{}

func (memTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, nil)
}

type stubNotifier struct{}

func (stubNotifier) SendAdmission(context.Context, string, string, []byte, string) error {
	return nil
}

type stubImager struct{}

func (stubImager) Image(token string) ([]byte, error) { return []byte("png:" + token), nil }

// newTestServer wires a full Server over in-memory ports.
func newTestServer() (*Server, *memRequestRepo, *memTokenRepo, *memAdminRepo, *SessionManager) {
	requests := newMemRequestRepo()
	tokens := newMemTokenRepo()
	admins := newMemAdminRepo()
	logger := testLogger()

	requestUC := usecase.NewRequestUseCase(requests)
	approvalUC := usecase.NewApprovalUseCase(requests, tokens, memTxManager{}, stubNotifier{}, stubImager{}, "https://door.example.com", logger)
	redemptionUC := usecase.NewRedemptionUseCase(tokens, requests, logger)
	authUC := usecase.NewAuthUseCase(admins)

	sessions := NewSessionManager("test-secret", 24*time.Hour, false)
	return NewServer(requestUC, approvalUC, redemptionUC, authUC, sessions, logger), requests, tokens, admins, sessions
}
