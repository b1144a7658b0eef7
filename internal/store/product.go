package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
)

// ProductStore defines the interface for product persistence.
type ProductStore interface {
	// Create saves a new product to the store.
	// Returns ErrInvalidEntity if the owner account does not exist.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// Update persists modified product fields. The owner reference is
	// immutable and is never written. Returns ErrProductNotFound if the
	// product does not exist.
	Update(ctx context.Context, product *domain.Product) error

	// List returns all products ordered by creation time.
	List(ctx context.Context) ([]*domain.Product, error)

	// ListByOwner returns all products owned by the given account,
	// ordered by creation time.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Product, error)

	// WithTx returns a new ProductStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ProductStore
}
