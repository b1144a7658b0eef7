package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
	"github.com/mercato/storefront-api/internal/platform/logger"
	"github.com/mercato/storefront-api/internal/store"
)

// AccountService provides account read operations.
type AccountService interface {
	// Get retrieves a single account hydrated with its products and cart.
	// An account may only read itself: requesting another account's ID
	// yields ErrNotAuthorized.
	Get(ctx context.Context, accountID, requestedID uuid.UUID) (*domain.Account, error)

	// List retrieves all accounts, hydrated the same way. Public.
	List(ctx context.Context) ([]*domain.Account, error)
}

// accountServiceImpl implements the AccountService interface
type accountServiceImpl struct {
	accountStore store.AccountStore
	hydrate      *hydrator
	logger       *slog.Logger
}

// NewAccountService creates a new AccountService.
// It returns an error if any of the required dependencies are nil.
func NewAccountService(
	accountStore store.AccountStore,
	productStore store.ProductStore,
	cartItemStore store.CartItemStore,
	log *slog.Logger,
) (AccountService, error) {
	if accountStore == nil {
		return nil, domain.NewValidationError("accountStore", "cannot be nil", domain.ErrValidation)
	}
	if productStore == nil {
		return nil, domain.NewValidationError("productStore", "cannot be nil", domain.ErrValidation)
	}
	if cartItemStore == nil {
		return nil, domain.NewValidationError("cartItemStore", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &accountServiceImpl{
		accountStore: accountStore,
		hydrate: &hydrator{
			accounts:  accountStore,
			products:  productStore,
			cartItems: cartItemStore,
		},
		logger: log.With(slog.String("component", "account_service")),
	}, nil
}

// Get implements AccountService.Get
func (s *accountServiceImpl) Get(ctx context.Context, accountID, requestedID uuid.UUID) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if accountID == uuid.Nil {
		return nil, ErrNotLoggedIn
	}

	if err := RequireOwner(accountID, requestedID); err != nil {
		log.Debug("account read rejected: self-only",
			"account_id", accountID,
			"requested_id", requestedID)
		return nil, err
	}

	account, err := s.accountStore.GetByID(ctx, requestedID)
	if err != nil {
		log.Debug("account lookup failed", "error", err, "account_id", requestedID)
		return nil, err
	}

	return s.hydrate.account(ctx, account)
}

// List implements AccountService.List
func (s *accountServiceImpl) List(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accountStore.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if _, err := s.hydrate.account(ctx, account); err != nil {
			return nil, err
		}
	}

	return accounts, nil
}
