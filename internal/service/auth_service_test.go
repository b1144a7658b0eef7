package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
	"github.com/mercato/storefront-api/internal/mocks"
	"github.com/mercato/storefront-api/internal/service"
	"github.com/mercato/storefront-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T, accountStore *mocks.MockAccountStore) service.AuthService {
	t.Helper()

	svc, err := service.NewAuthService(
		accountStore,
		&mocks.MockPasswordHasher{},
		&mocks.MockPasswordVerifier{},
		&mocks.MockJWTService{Token: "test-token"},
		nil,
	)
	require.NoError(t, err)
	return svc
}

func TestNewAuthService(t *testing.T) {
	t.Parallel()

	t.Run("rejects nil account store", func(t *testing.T) {
		t.Parallel()

		svc, err := service.NewAuthService(
			nil,
			&mocks.MockPasswordHasher{},
			&mocks.MockPasswordVerifier{},
			&mocks.MockJWTService{},
			nil,
		)
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("rejects nil jwt service", func(t *testing.T) {
		t.Parallel()

		svc, err := service.NewAuthService(
			mocks.NewMockAccountStore(),
			&mocks.MockPasswordHasher{},
			&mocks.MockPasswordVerifier{},
			nil,
			nil,
		)
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestSignup(t *testing.T) {
	t.Parallel()

	t.Run("registers account with normalized email", func(t *testing.T) {
		t.Parallel()

		accountStore := mocks.NewMockAccountStore()
		svc := newTestAuthService(t, accountStore)

		account, err := svc.Signup(context.Background(), "  NewUser@Example.COM ", "secret123")
		require.NoError(t, err)

		assert.Equal(t, "newuser@example.com", account.Email)
		assert.NotEqual(t, uuid.Nil, account.ID)
		assert.Equal(t, "hashed:secret123", account.HashedPassword)

		stored, err := accountStore.GetByEmail(context.Background(), "newuser@example.com")
		require.NoError(t, err)
		assert.Equal(t, account.ID, stored.ID)
	})

	t.Run("rejects short password", func(t *testing.T) {
		t.Parallel()

		accountStore := mocks.NewMockAccountStore()
		svc := newTestAuthService(t, accountStore)

		account, err := svc.Signup(context.Background(), "a@example.com", "12345")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, account)
		assert.Empty(t, accountStore.Accounts)
	})

	t.Run("rejects password that is only padding", func(t *testing.T) {
		t.Parallel()

		accountStore := mocks.NewMockAccountStore()
		svc := newTestAuthService(t, accountStore)

		account, err := svc.Signup(context.Background(), "a@example.com", "  123  ")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, account)
	})

	t.Run("rejects duplicate email regardless of casing and whitespace", func(t *testing.T) {
		t.Parallel()

		accountStore := mocks.NewMockAccountStore()
		svc := newTestAuthService(t, accountStore)

		_, err := svc.Signup(context.Background(), "A@x.com", "secret123")
		require.NoError(t, err)

		account, err := svc.Signup(context.Background(), " a@x.com ", "another-secret")
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.Nil(t, account)
		assert.Len(t, accountStore.Accounts, 1)
	})

	t.Run("taken email wins over short password", func(t *testing.T) {
		t.Parallel()

		// The duplicate lookup runs before password validation, so a taken
		// email reports the conflict even when the password is also invalid.
		accountStore := mocks.NewMockAccountStore()
		svc := newTestAuthService(t, accountStore)

		_, err := svc.Signup(context.Background(), "a@x.com", "secret123")
		require.NoError(t, err)

		account, err := svc.Signup(context.Background(), "a@x.com", "123")
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.NotErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, account)
		assert.Len(t, accountStore.Accounts, 1)
	})

	t.Run("maps store-level duplicate to email exists", func(t *testing.T) {
		t.Parallel()

		// The fast-path lookup misses, then the unique index catches the
		// race on insert.
		accountStore := mocks.NewMockAccountStore()
		accountStore.GetByEmailFn = func(ctx context.Context, email string) (*domain.Account, error) {
			return nil, store.ErrAccountNotFound
		}
		accountStore.CreateFn = func(ctx context.Context, account *domain.Account) error {
			return store.ErrEmailExists
		}
		svc := newTestAuthService(t, accountStore)

		account, err := svc.Signup(context.Background(), "a@x.com", "secret123")
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.Nil(t, account)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	signupAccount := func(t *testing.T, svc service.AuthService, email, password string) *domain.Account {
		t.Helper()
		account, err := svc.Signup(context.Background(), email, password)
		require.NoError(t, err)
		return account
	}

	t.Run("issues token for valid credentials", func(t *testing.T) {
		t.Parallel()

		accountStore := mocks.NewMockAccountStore()
		svc := newTestAuthService(t, accountStore)
		account := signupAccount(t, svc, "a@example.com", "secret123")

		result, err := svc.Login(context.Background(), "a@example.com", "secret123")
		require.NoError(t, err)

		assert.Equal(t, account.ID, result.AccountID)
		assert.Equal(t, "test-token", result.Token)
	})

	t.Run("unknown email yields account not found", func(t *testing.T) {
		t.Parallel()

		accountStore := mocks.NewMockAccountStore()
		svc := newTestAuthService(t, accountStore)

		result, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, service.ErrAccountNotFound)
		assert.Nil(t, result)
	})

	t.Run("wrong password yields invalid credentials", func(t *testing.T) {
		t.Parallel()

		accountStore := mocks.NewMockAccountStore()
		svc := newTestAuthService(t, accountStore)
		signupAccount(t, svc, "a@example.com", "secret123")

		result, err := svc.Login(context.Background(), "a@example.com", "wrong-password")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Nil(t, result)
	})

	t.Run("login matches the email exactly as supplied", func(t *testing.T) {
		t.Parallel()

		// Signup stores the normalized spelling; login does not normalize.
		// The original casing therefore misses, and the normalized spelling
		// hits.
		accountStore := mocks.NewMockAccountStore()
		svc := newTestAuthService(t, accountStore)
		signupAccount(t, svc, "MixedCase@Example.com", "secret123")

		result, err := svc.Login(context.Background(), "MixedCase@Example.com", "secret123")
		assert.ErrorIs(t, err, service.ErrAccountNotFound)
		assert.Nil(t, result)

		result, err = svc.Login(context.Background(), "mixedcase@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "test-token", result.Token)
	})
}
