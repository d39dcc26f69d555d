package sheets

import (
	"context"
	"sync"

	"github.com/utsavgifts/catalogd/internal/common"
	"github.com/utsavgifts/catalogd/internal/model"
)

// MockClient is an in-memory stand-in for Client in tests. It implements
// the ProductSource and CredentialStore service interfaces.
type MockClient struct {
	FetchFunc        func(ctx context.Context) ([]model.Product, error)
	Products         []model.Product
	Credentials      map[string]string
	Admins           map[string]bool
	AppendedRows     []model.AuditEntry
	AppendErr        error
	FetchCallCount   int
	AppendCallCount  int
	mu               sync.Mutex
}

// NewMockClient creates a mock with empty fixtures.
func NewMockClient() *MockClient {
	return &MockClient{
		Credentials: make(map[string]string),
		Admins:      make(map[string]bool),
	}
}

// FetchProducts returns the configured fixture products.
func (m *MockClient) FetchProducts(ctx context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCallCount++
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return m.Products, nil
}

// CheckCredentials checks against the configured fixture credentials.
func (m *MockClient) CheckCredentials(_ context.Context, email, password string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pw, ok := m.Credentials[email]; ok && pw == password {
		return &model.Session{Email: email, Authenticated: true, IsAdmin: m.Admins[email]}, nil
	}
	return nil, common.ErrInvalidCredentials
}

// Appended returns a copy of the rows recorded so far.
func (m *MockClient) Appended() []model.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.AuditEntry, len(m.AppendedRows))
	copy(out, m.AppendedRows)
	return out
}

// AppendCalls returns how many times AppendAuditRow has been called.
func (m *MockClient) AppendCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.AppendCallCount
}

// AppendAuditRow records the entry in memory.
func (m *MockClient) AppendAuditRow(_ context.Context, entry model.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AppendCallCount++
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.AppendedRows = append(m.AppendedRows, entry)
	return nil
}
