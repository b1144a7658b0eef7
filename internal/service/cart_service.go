package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
	"github.com/mercato/storefront-api/internal/platform/logger"
	"github.com/mercato/storefront-api/internal/store"
)

// CartService provides the add/increment and remove cart-line logic.
type CartService interface {
	// AddToCart adds the product to the account's cart. A first add
	// creates a line with quantity 1; every further add for the same
	// product increments that line's quantity. Repeated calls never
	// create a second line for the same product. The returned line is
	// hydrated with its product and owner.
	//
	// Every failure propagates to the caller.
	AddToCart(ctx context.Context, accountID, productID uuid.UUID) (*domain.CartItem, error)

	// RemoveFromCart deletes a cart line owned by the account and returns
	// the line's prior snapshot, hydrated. A line owned by a different
	// account yields ErrNotAuthorized.
	RemoveFromCart(ctx context.Context, accountID, cartItemID uuid.UUID) (*domain.CartItem, error)
}

// cartServiceImpl implements the CartService interface
type cartServiceImpl struct {
	cartItemStore store.CartItemStore
	productStore  store.ProductStore
	hydrate       *hydrator
	logger        *slog.Logger
}

// NewCartService creates a new CartService.
// It returns an error if any of the required dependencies are nil.
func NewCartService(
	cartItemStore store.CartItemStore,
	productStore store.ProductStore,
	accountStore store.AccountStore,
	log *slog.Logger,
) (CartService, error) {
	if cartItemStore == nil {
		return nil, domain.NewValidationError("cartItemStore", "cannot be nil", domain.ErrValidation)
	}
	if productStore == nil {
		return nil, domain.NewValidationError("productStore", "cannot be nil", domain.ErrValidation)
	}
	if accountStore == nil {
		return nil, domain.NewValidationError("accountStore", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &cartServiceImpl{
		cartItemStore: cartItemStore,
		productStore:  productStore,
		hydrate: &hydrator{
			accounts:  accountStore,
			products:  productStore,
			cartItems: cartItemStore,
		},
		logger: log.With(slog.String("component", "cart_service")),
	}, nil
}

// AddToCart implements CartService.AddToCart
//
// The increment-or-create decision happens inside the store's atomic
// upsert, keyed on (owner, product). There is no scan-then-insert window,
// so two concurrent adds for the same pair end up on one line with the
// quantity bumped twice.
func (s *cartServiceImpl) AddToCart(ctx context.Context, accountID, productID uuid.UUID) (*domain.CartItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if accountID == uuid.Nil {
		return nil, ErrNotLoggedIn
	}

	// Fail with a precise not-found before the upsert turns a missing
	// product into a bare foreign key violation.
	if _, err := s.productStore.GetByID(ctx, productID); err != nil {
		log.Debug("add to cart rejected: product lookup failed",
			"error", err, "product_id", productID)
		return nil, err
	}

	line, err := domain.NewCartItem(accountID, productID)
	if err != nil {
		return nil, err
	}

	result, err := s.cartItemStore.Upsert(ctx, line)
	if err != nil {
		log.Error("failed to upsert cart line",
			"error", err,
			"account_id", accountID,
			"product_id", productID)
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	log.Info("cart line upserted",
		"cart_item_id", result.ID,
		"account_id", accountID,
		"quantity", result.Quantity)

	return s.hydrate.cartItem(ctx, result)
}

// RemoveFromCart implements CartService.RemoveFromCart
func (s *cartServiceImpl) RemoveFromCart(ctx context.Context, accountID, cartItemID uuid.UUID) (*domain.CartItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if accountID == uuid.Nil {
		return nil, ErrNotLoggedIn
	}

	item, err := s.cartItemStore.GetByID(ctx, cartItemID)
	if err != nil {
		log.Debug("cart line lookup failed during remove",
			"error", err, "cart_item_id", cartItemID)
		return nil, err
	}

	if err := RequireOwner(accountID, item.OwnerID); err != nil {
		log.Debug("remove rejected: not the owner",
			"cart_item_id", cartItemID,
			"account_id", accountID)
		return nil, err
	}

	// Hydrate before deleting so the returned snapshot still resolves.
	snapshot, err := s.hydrate.cartItem(ctx, item)
	if err != nil {
		return nil, err
	}

	if err := s.cartItemStore.Delete(ctx, cartItemID); err != nil {
		log.Error("failed to delete cart line",
			"error", err, "cart_item_id", cartItemID)
		return nil, fmt.Errorf("failed to remove from cart: %w", err)
	}

	log.Info("cart line removed",
		"cart_item_id", cartItemID,
		"account_id", accountID)

	return snapshot, nil
}
