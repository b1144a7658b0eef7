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

// PostgresProductStore implements the store.ProductStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a new PostgreSQL implementation of the
// ProductStore interface. It accepts a database connection or transaction
// managed by the caller. If logger is nil, the default logger is used.
func NewPostgresProductStore(db store.DBTX, log *slog.Logger) *PostgresProductStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresProductStore{
		db:     db,
		logger: log.With(slog.String("component", "product_store")),
	}
}

// Ensure PostgresProductStore implements store.ProductStore interface
var _ store.ProductStore = (*PostgresProductStore)(nil)

// Create implements store.ProductStore.Create
// Returns store.ErrInvalidEntity if the owner account does not exist
// (foreign key violation).
func (s *PostgresProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during create",
			slog.String("error", err.Error()),
			slog.String("product_id", product.ID.String()))
		return err
	}

	query := `
		INSERT INTO products (id, description, price, image_url, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Description,
		product.Price,
		product.ImageURL,
		product.OwnerID,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during product creation",
				slog.String("product_id", product.ID.String()),
				slog.String("owner_id", product.OwnerID.String()))
			return fmt.Errorf("%w: account with ID %s not found",
				store.ErrInvalidEntity, product.OwnerID)
		}

		log.Error("failed to create product",
			slog.String("error", err.Error()),
			slog.String("product_id", product.ID.String()))
		return MapError(err)
	}

	log.Info("product created successfully",
		slog.String("product_id", product.ID.String()),
		slog.String("owner_id", product.OwnerID.String()))
	return nil
}

// GetByID implements store.ProductStore.GetByID
// Returns store.ErrProductNotFound if the product does not exist.
func (s *PostgresProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, description, price, image_url, owner_id, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Description,
		&product.Price,
		&product.ImageURL,
		&product.OwnerID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("product not found", slog.String("product_id", id.String()))
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to get product by ID",
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()))
		return nil, MapError(err)
	}

	return &product, nil
}

// Update implements store.ProductStore.Update
// The owner_id column is deliberately excluded: ownership is immutable.
// Returns store.ErrProductNotFound if the product does not exist.
func (s *PostgresProductStore) Update(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during update",
			slog.String("error", err.Error()),
			slog.String("product_id", product.ID.String()))
		return err
	}

	query := `
		UPDATE products
		SET description = $2, price = $3, image_url = $4, updated_at = $5
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Description,
		product.Price,
		product.ImageURL,
		product.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to update product",
			slog.String("error", err.Error()),
			slog.String("product_id", product.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "product"); err != nil {
		log.Debug("product not found during update",
			slog.String("product_id", product.ID.String()))
		return store.ErrProductNotFound
	}

	log.Info("product updated successfully",
		slog.String("product_id", product.ID.String()))
	return nil
}

// List implements store.ProductStore.List
func (s *PostgresProductStore) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, description, price, image_url, owner_id, created_at, updated_at
		FROM products
		ORDER BY created_at
	`
	return s.queryProducts(ctx, query)
}

// ListByOwner implements store.ProductStore.ListByOwner
func (s *PostgresProductStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Product, error) {
	query := `
		SELECT id, description, price, image_url, owner_id, created_at, updated_at
		FROM products
		WHERE owner_id = $1
		ORDER BY created_at
	`
	return s.queryProducts(ctx, query, ownerID)
}

// WithTx implements store.ProductStore.WithTx
func (s *PostgresProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return &PostgresProductStore{
		db:     tx,
		logger: s.logger,
	}
}

// queryProducts runs a product SELECT and scans all rows.
func (s *PostgresProductStore) queryProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var products []*domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Description,
			&product.Price,
			&product.ImageURL,
			&product.OwnerID,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			log.Error("failed to scan product row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return products, nil
}
