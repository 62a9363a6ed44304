package mocks

import (
	"context"
	"sync"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// MockDropDataStore implements domain.DropDataStore for testing
type MockDropDataStore struct {
	SetFunc      func(ctx context.Context, sessionID string, data *domain.DropFormData) error
	GetFunc      func(ctx context.Context, sessionID string) (*domain.DropFormData, error)
	ClearFunc    func(ctx context.Context, sessionID string) error
	MarkFlowFunc func(ctx context.Context, sessionID string) error
	InFlowFunc   func(ctx context.Context, sessionID string) (bool, error)

	mu    sync.Mutex
	data  map[string]*domain.DropFormData
	flows map[string]bool
}

// NewMockDropDataStore creates a new MockDropDataStore with default behaviors
func NewMockDropDataStore() *MockDropDataStore {
	return &MockDropDataStore{
		data:  make(map[string]*domain.DropFormData),
		flows: make(map[string]bool),
	}
}

func (m *MockDropDataStore) Set(ctx context.Context, sessionID string, data *domain.DropFormData) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, sessionID, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if data.Empty() {
		delete(m.data, sessionID)
		return nil
	}
	m.data[sessionID] = data
	return nil
}

func (m *MockDropDataStore) Get(ctx context.Context, sessionID string) (*domain.DropFormData, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[sessionID]
	if !ok {
		return nil, domain.ErrScratchNotFound
	}
	return d, nil
}

func (m *MockDropDataStore) Clear(ctx context.Context, sessionID string) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	delete(m.flows, sessionID)
	return nil
}

func (m *MockDropDataStore) MarkFlow(ctx context.Context, sessionID string) error {
	if m.MarkFlowFunc != nil {
		return m.MarkFlowFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flows[sessionID] = true
	return nil
}

func (m *MockDropDataStore) InFlow(ctx context.Context, sessionID string) (bool, error) {
	if m.InFlowFunc != nil {
		return m.InFlowFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flows[sessionID], nil
}

// Compile-time interface compliance verification
var _ domain.DropDataStore = (*MockDropDataStore)(nil)
