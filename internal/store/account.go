package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
)

// AccountStore defines the interface for account persistence.
type AccountStore interface {
	// Create saves a new account to the store. The account's email must
	// already be normalized and its password hashed by the caller.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID retrieves an account by its unique ID.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// GetByEmail retrieves an account by exact email match. The argument is
	// compared as-is against the stored (normalized) value; callers decide
	// whether to normalize first. Returns ErrAccountNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// List returns all accounts ordered by creation time.
	List(ctx context.Context) ([]*domain.Account, error)

	// WithTx returns a new AccountStore bound to the provided transaction.
	WithTx(tx *sql.Tx) AccountStore
}
