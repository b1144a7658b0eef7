package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
)

// CartItemStore defines the interface for cart line persistence.
//
// The "one line per (owner, product)" invariant is enforced here, at the
// store boundary: Upsert is an atomic conditional insert-or-increment
// backed by a unique index, so two concurrent adds for the same pair can
// never produce two rows.
type CartItemStore interface {
	// Upsert inserts the given cart line, or, if a line for the same
	// (owner, product) pair already exists, atomically increments that
	// line's quantity by one instead. It returns the resulting row.
	// Returns ErrInvalidEntity if the owner or product does not exist.
	Upsert(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)

	// GetByID retrieves a cart line by its unique ID.
	// Returns ErrCartItemNotFound if the line does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CartItem, error)

	// ListByOwner returns all cart lines belonging to the given account,
	// ordered by creation time.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.CartItem, error)

	// Delete removes a cart line by its ID. Deleting the row also detaches
	// it from the owner's cart, which is a query in this model.
	// Returns ErrCartItemNotFound if the line does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CartItemStore bound to the provided transaction.
	WithTx(tx *sql.Tx) CartItemStore
}
