// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"guestpass/internal/domain"
	"guestpass/internal/domain/model"
	"guestpass/internal/domain/ports/repository"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memRequestRepo is a small in-memory implementation used by unit tests.
type memRequestRepo struct {
	mu        sync.RWMutex
	store     map[string]*model.AccessRequest
	order     []string // insertion order
	createErr error    // used by tests to simulate failures
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{store: make(map[string]*model.AccessRequest)}
}

func (m *memRequestRepo) Create(ctx context.Context, tx repository.Tx, req *model.AccessRequest) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *req
	m.store[req.ID] = &cp
	m.order = append(m.order, req.ID)
	return nil
}

func (m *memRequestRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.AccessRequest, error) {
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

func (m *memRequestRepo) MarkApproved(ctx context.Context, tx repository.Tx, id string, at time.Time) error {
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

func (m *memRequestRepo) ListPending(ctx context.Context, tx repository.Tx) ([]*model.AccessRequest, error) {
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

func (m *memRequestRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.AccessRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.AccessRequest, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		cp := *m.store[m.order[i]]
		out = append(out, &cp)
	}
	return out, nil
}

// memTokenRepo implements the token registry with a mutex-guarded
// compare-and-set, mirroring the SQL UPDATE ... WHERE used=FALSE.
type memTokenRepo struct {
	mu        sync.Mutex
	byToken   map[string]*model.AdmissionToken
	byRequest map[string]*model.AdmissionToken
	insertErr error
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{
		byToken:   make(map[string]*model.AdmissionToken),
		byRequest: make(map[string]*model.AdmissionToken),
	}
}

func (m *memTokenRepo) Insert(ctx context.Context, tx repository.Tx, token *model.AdmissionToken) error {
	if m.insertErr != nil {
		return m.insertErr
	}
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

func (m *memTokenRepo) FindByRequestID(ctx context.Context, tx repository.Tx, requestID string) (*model.AdmissionToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byRequest[requestID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTokenRepo) Consume(ctx context.Context, tx repository.Tx, tokenString string) (*model.AdmissionToken, error) {
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

// memAdminRepo holds admin accounts keyed by username.
type memAdminRepo struct {
	mu    sync.RWMutex
	store map[string]*model.AdminAccount
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{store: make(map[string]*model.AdminAccount)}
}

func (m *memAdminRepo) Create(ctx context.Context, tx repository.Tx, admin *model.AdminAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[admin.Username]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *admin
	m.store[admin.Username] = &cp
	return nil
}

func (m *memAdminRepo) FindByUsername(ctx context.Context, tx repository.Tx, username string) (*model.AdminAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// memTxManager runs the callback directly; the mem repos are their own
// synchronization domain.
type memTxManager struct {
	beginErr error
}

func (m *memTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.beginErr != nil {
		return m.beginErr
	}
	return fn(ctx, nil)
}

// stubNotifier records deliveries and can simulate failure.
type stubNotifier struct {
	mu      sync.Mutex
	sent    []stubDelivery
	sendErr error
}

type stubDelivery struct {
	Recipient   string
	DisplayName string
	PNG         []byte
	FallbackURL string
}

func (s *stubNotifier) SendAdmission(ctx context.Context, recipient, displayName string, codePNG []byte, fallbackURL string) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, stubDelivery{recipient, displayName, codePNG, fallbackURL})
	return nil
}

func (s *stubNotifier) deliveries() []stubDelivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]stubDelivery(nil), s.sent...)
}

// stubImager returns a fixed byte blob.
type stubImager struct {
	imageErr error
}

func (s *stubImager) Image(token string) ([]byte, error) {
	if s.imageErr != nil {
		return nil, s.imageErr
	}
	return []byte("png:" + token), nil
}
