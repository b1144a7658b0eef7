package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
	"github.com/mercato/storefront-api/internal/store"
)

// MockCartItemStore implements store.CartItemStore for testing.
//
// The default Upsert mirrors the real store's insert-or-increment
// semantics, guarded by a mutex so concurrency tests exercise the same
// "one line per (owner, product)" invariant the unique index enforces.
type MockCartItemStore struct {
	// Function fields for customizable behavior
	UpsertFn      func(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.CartItem, error)
	ListByOwnerFn func(ctx context.Context, ownerID uuid.UUID) ([]*domain.CartItem, error)
	DeleteFn      func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Items map[uuid.UUID]*domain.CartItem

	UpsertError error
	DeleteError error

	mu sync.Mutex
}

// NewMockCartItemStore creates a new mock store with initialized defaults
func NewMockCartItemStore() *MockCartItemStore {
	return &MockCartItemStore{
		Items: make(map[uuid.UUID]*domain.CartItem),
	}
}

// Upsert implements the CartItemStore interface
func (m *MockCartItemStore) Upsert(
	ctx context.Context,
	item *domain.CartItem,
) (*domain.CartItem, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, item)
	}

	if m.UpsertError != nil {
		return nil, m.UpsertError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Items {
		if existing.OwnerID == item.OwnerID && existing.ProductID == item.ProductID {
			existing.Quantity++
			existing.UpdatedAt = time.Now().UTC()
			return existing, nil
		}
	}

	stored := *item
	m.Items[stored.ID] = &stored
	return &stored, nil
}

// GetByID implements the CartItemStore interface
func (m *MockCartItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CartItem, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, exists := m.Items[id]
	if !exists {
		return nil, store.ErrCartItemNotFound
	}

	return item, nil
}

// ListByOwner implements the CartItemStore interface
func (m *MockCartItemStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.CartItem, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]*domain.CartItem, 0)
	for _, item := range m.Items {
		if item.OwnerID == ownerID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// Delete implements the CartItemStore interface
func (m *MockCartItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Items[id]; !exists {
		return store.ErrCartItemNotFound
	}

	delete(m.Items, id)
	return nil
}

// WithTx implements the CartItemStore interface for transaction support
func (m *MockCartItemStore) WithTx(tx *sql.Tx) store.CartItemStore {
	return m
}
