package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
	"github.com/mercato/storefront-api/internal/platform/logger"
	"github.com/mercato/storefront-api/internal/store"
)

// PostgresCartItemStore implements the store.CartItemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCartItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCartItemStore creates a new PostgreSQL implementation of the
// CartItemStore interface. It accepts a database connection or transaction
// managed by the caller. If logger is nil, the default logger is used.
func NewPostgresCartItemStore(db store.DBTX, log *slog.Logger) *PostgresCartItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresCartItemStore{
		db:     db,
		logger: log.With(slog.String("component", "cart_item_store")),
	}
}

// Ensure PostgresCartItemStore implements store.CartItemStore interface
var _ store.CartItemStore = (*PostgresCartItemStore)(nil)

// Upsert implements store.CartItemStore.Upsert
//
// The ON CONFLICT clause targets the unique index on (account_id,
// product_id), so concurrent adds for the same pair serialize on the index
// and always land on one row. The RETURNING clause yields the row as it
// is after the statement: the fresh insert or the incremented line.
func (s *PostgresCartItemStore) Upsert(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("cart item validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("cart_item_id", item.ID.String()))
		return nil, err
	}

	query := `
		INSERT INTO cart_items (id, account_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (account_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + 1, updated_at = EXCLUDED.updated_at
		RETURNING id, account_id, product_id, quantity, created_at, updated_at
	`

	var result domain.CartItem
	err := s.db.QueryRowContext(
		ctx,
		query,
		item.ID,
		item.OwnerID,
		item.ProductID,
		item.Quantity,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(
		&result.ID,
		&result.OwnerID,
		&result.ProductID,
		&result.Quantity,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during cart upsert",
				slog.String("owner_id", item.OwnerID.String()),
				slog.String("product_id", item.ProductID.String()))
			return nil, fmt.Errorf("%w: referenced account or product not found",
				store.ErrInvalidEntity)
		}

		log.Error("failed to upsert cart item",
			slog.String("error", err.Error()),
			slog.String("owner_id", item.OwnerID.String()),
			slog.String("product_id", item.ProductID.String()))
		return nil, MapError(err)
	}

	log.Info("cart item upserted",
		slog.String("cart_item_id", result.ID.String()),
		slog.String("owner_id", result.OwnerID.String()),
		slog.Int("quantity", result.Quantity))
	return &result, nil
}

// GetByID implements store.CartItemStore.GetByID
// Returns store.ErrCartItemNotFound if the line does not exist.
func (s *PostgresCartItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CartItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, account_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE id = $1
	`

	var item domain.CartItem
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.OwnerID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("cart item not found", slog.String("cart_item_id", id.String()))
			return nil, store.ErrCartItemNotFound
		}
		log.Error("failed to get cart item by ID",
			slog.String("error", err.Error()),
			slog.String("cart_item_id", id.String()))
		return nil, MapError(err)
	}

	return &item, nil
}

// ListByOwner implements store.CartItemStore.ListByOwner
func (s *PostgresCartItemStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.CartItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, account_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE account_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list cart items",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var items []*domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.OwnerID,
			&item.ProductID,
			&item.Quantity,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			log.Error("failed to scan cart item row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return items, nil
}

// Delete implements store.CartItemStore.Delete
// Returns store.ErrCartItemNotFound if the line does not exist.
func (s *PostgresCartItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM cart_items WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete cart item",
			slog.String("error", err.Error()),
			slog.String("cart_item_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "cart item"); err != nil {
		log.Debug("cart item not found during delete",
			slog.String("cart_item_id", id.String()))
		return store.ErrCartItemNotFound
	}

	log.Info("cart item deleted", slog.String("cart_item_id", id.String()))
	return nil
}

// WithTx implements store.CartItemStore.WithTx
func (s *PostgresCartItemStore) WithTx(tx *sql.Tx) store.CartItemStore {
	return &PostgresCartItemStore{
		db:     tx,
		logger: s.logger,
	}
}
