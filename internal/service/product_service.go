package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
	"github.com/mercato/storefront-api/internal/platform/logger"
	"github.com/mercato/storefront-api/internal/store"
)

// UpdateProductParams carries the partial fields for a product update.
//
// A field is applied only when it is truthy: a non-empty description or
// image URL, a non-zero price. Zero values mean "not provided", so supplying
// price 0 leaves the stored price unchanged. This mirrors the documented
// update contract; an explicit presence marker was deliberately not
// introduced.
type UpdateProductParams struct {
	Description string
	Price       int64
	ImageURL    string
}

// ProductService provides ownership-linked product operations.
type ProductService interface {
	// Create creates a product owned by the authenticated account.
	// Description, price, and image URL are all required; a zero price
	// counts as missing. The result is hydrated with the owner and the
	// owner's other products.
	Create(ctx context.Context, accountID uuid.UUID, description string, price int64, imageURL string) (*domain.Product, error)

	// Update applies the truthy fields of params to the product. Only the
	// owner may update; ownership itself is immutable. The result is
	// hydrated with the owner.
	Update(ctx context.Context, accountID, productID uuid.UUID, params UpdateProductParams) (*domain.Product, error)

	// Get retrieves a single product hydrated with its owner and the
	// owner's products. Public.
	Get(ctx context.Context, productID uuid.UUID) (*domain.Product, error)

	// List retrieves all products, each hydrated with its owner. Public.
	List(ctx context.Context) ([]*domain.Product, error)
}

// productServiceImpl implements the ProductService interface
type productServiceImpl struct {
	productStore store.ProductStore
	hydrate      *hydrator
	logger       *slog.Logger
}

// NewProductService creates a new ProductService.
// It returns an error if any of the required dependencies are nil.
func NewProductService(
	productStore store.ProductStore,
	accountStore store.AccountStore,
	log *slog.Logger,
) (ProductService, error) {
	if productStore == nil {
		return nil, domain.NewValidationError("productStore", "cannot be nil", domain.ErrValidation)
	}
	if accountStore == nil {
		return nil, domain.NewValidationError("accountStore", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &productServiceImpl{
		productStore: productStore,
		hydrate: &hydrator{
			accounts: accountStore,
			products: productStore,
		},
		logger: log.With(slog.String("component", "product_service")),
	}, nil
}

// Create implements ProductService.Create
func (s *productServiceImpl) Create(
	ctx context.Context,
	accountID uuid.UUID,
	description string,
	price int64,
	imageURL string,
) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if accountID == uuid.Nil {
		return nil, ErrNotLoggedIn
	}

	product, err := domain.NewProduct(accountID, description, price, imageURL)
	if err != nil {
		log.Debug("product creation rejected", "error", err)
		return nil, err
	}

	if err := s.productStore.Create(ctx, product); err != nil {
		log.Error("failed to create product", "error", err, "account_id", accountID)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Info("product created",
		"product_id", product.ID,
		"account_id", accountID)

	return s.hydrate.product(ctx, product)
}

// Update implements ProductService.Update
func (s *productServiceImpl) Update(
	ctx context.Context,
	accountID, productID uuid.UUID,
	params UpdateProductParams,
) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if accountID == uuid.Nil {
		return nil, ErrNotLoggedIn
	}

	product, err := s.productStore.GetByID(ctx, productID)
	if err != nil {
		log.Debug("product lookup failed during update",
			"error", err, "product_id", productID)
		return nil, err
	}

	if err := RequireOwner(accountID, product.OwnerID); err != nil {
		log.Debug("update rejected: not the owner",
			"product_id", productID,
			"account_id", accountID)
		return nil, err
	}

	// Truthy partial update: zero values leave the stored field untouched.
	if params.Description != "" {
		product.Description = params.Description
	}
	if params.Price != 0 {
		product.Price = params.Price
	}
	if params.ImageURL != "" {
		product.ImageURL = params.ImageURL
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.productStore.Update(ctx, product); err != nil {
		log.Error("failed to update product", "error", err, "product_id", productID)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	log.Info("product updated", "product_id", productID)

	return s.hydrate.product(ctx, product)
}

// Get implements ProductService.Get
func (s *productServiceImpl) Get(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	product, err := s.productStore.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.hydrate.product(ctx, product)
}

// List implements ProductService.List
func (s *productServiceImpl) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productStore.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, product := range products {
		if _, err := s.hydrate.product(ctx, product); err != nil {
			return nil, err
		}
	}

	return products, nil
}
