package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
	"github.com/mercato/storefront-api/internal/store"
)

// MockProductStore implements store.ProductStore for testing
type MockProductStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, product *domain.Product) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	UpdateFn      func(ctx context.Context, product *domain.Product) error
	ListFn        func(ctx context.Context) ([]*domain.Product, error)
	ListByOwnerFn func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Product, error)

	// Data for default implementation
	Products map[uuid.UUID]*domain.Product

	CreateError error
	UpdateError error
}

// NewMockProductStore creates a new mock store with initialized defaults
func NewMockProductStore() *MockProductStore {
	return &MockProductStore{
		Products: make(map[uuid.UUID]*domain.Product),
	}
}

// Create implements the ProductStore interface
func (m *MockProductStore) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, product)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Products[product.ID] = product
	return nil
}

// GetByID implements the ProductStore interface
func (m *MockProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	product, exists := m.Products[id]
	if !exists {
		return nil, store.ErrProductNotFound
	}

	return product, nil
}

// Update implements the ProductStore interface
func (m *MockProductStore) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, product)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	existing, exists := m.Products[product.ID]
	if !exists {
		return store.ErrProductNotFound
	}

	// Ownership is immutable in the real store
	product.OwnerID = existing.OwnerID
	m.Products[product.ID] = product
	return nil
}

// List implements the ProductStore interface
func (m *MockProductStore) List(ctx context.Context) ([]*domain.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	products := make([]*domain.Product, 0, len(m.Products))
	for _, product := range m.Products {
		products = append(products, product)
	}
	sortProductsByCreation(products)
	return products, nil
}

// ListByOwner implements the ProductStore interface
func (m *MockProductStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Product, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}

	products := make([]*domain.Product, 0)
	for _, product := range m.Products {
		if product.OwnerID == ownerID {
			products = append(products, product)
		}
	}
	sortProductsByCreation(products)
	return products, nil
}

// WithTx implements the ProductStore interface for transaction support
func (m *MockProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return m
}

func sortProductsByCreation(products []*domain.Product) {
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
}
