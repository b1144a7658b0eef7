package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
	"github.com/mercato/storefront-api/internal/mocks"
	"github.com/mercato/storefront-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountServiceFixture struct {
	svc           service.AccountService
	accountStore  *mocks.MockAccountStore
	productStore  *mocks.MockProductStore
	cartItemStore *mocks.MockCartItemStore
}

func newAccountServiceFixture(t *testing.T) *accountServiceFixture {
	t.Helper()

	accountStore := mocks.NewMockAccountStore()
	productStore := mocks.NewMockProductStore()
	cartItemStore := mocks.NewMockCartItemStore()

	svc, err := service.NewAccountService(accountStore, productStore, cartItemStore, nil)
	require.NoError(t, err)

	return &accountServiceFixture{
		svc:           svc,
		accountStore:  accountStore,
		productStore:  productStore,
		cartItemStore: cartItemStore,
	}
}

func (f *accountServiceFixture) seedAccount(t *testing.T, email string) *domain.Account {
	t.Helper()
	account, err := domain.NewAccount(email, "hashed:secret123")
	require.NoError(t, err)
	require.NoError(t, f.accountStore.Create(context.Background(), account))
	return account
}

func TestAccountGet(t *testing.T) {
	t.Parallel()

	t.Run("account reads its own detail with products and cart", func(t *testing.T) {
		t.Parallel()
		f := newAccountServiceFixture(t)
		account := f.seedAccount(t, "a@example.com")

		product, err := domain.NewProduct(account.ID, "a fine hat", 1999, "https://img.example.com/hat.png")
		require.NoError(t, err)
		require.NoError(t, f.productStore.Create(context.Background(), product))

		line, err := domain.NewCartItem(account.ID, product.ID)
		require.NoError(t, err)
		_, err = f.cartItemStore.Upsert(context.Background(), line)
		require.NoError(t, err)

		got, err := f.svc.Get(context.Background(), account.ID, account.ID)
		require.NoError(t, err)

		require.Len(t, got.Products, 1)
		assert.Equal(t, product.ID, got.Products[0].ID)
		require.Len(t, got.Cart, 1)
		require.NotNil(t, got.Cart[0].Product)
		assert.Equal(t, product.ID, got.Cart[0].Product.ID)
	})

	t.Run("reading another account is rejected", func(t *testing.T) {
		t.Parallel()
		f := newAccountServiceFixture(t)
		account := f.seedAccount(t, "a@example.com")
		other := f.seedAccount(t, "b@example.com")

		got, err := f.svc.Get(context.Background(), account.ID, other.ID)
		assert.ErrorIs(t, err, service.ErrNotAuthorized)
		assert.Nil(t, got)
	})

	t.Run("requires authentication", func(t *testing.T) {
		t.Parallel()
		f := newAccountServiceFixture(t)
		account := f.seedAccount(t, "a@example.com")

		got, err := f.svc.Get(context.Background(), uuid.Nil, account.ID)
		assert.ErrorIs(t, err, service.ErrNotLoggedIn)
		assert.Nil(t, got)
	})
}

func TestAccountList(t *testing.T) {
	t.Parallel()

	f := newAccountServiceFixture(t)
	first := f.seedAccount(t, "a@example.com")
	f.seedAccount(t, "b@example.com")

	product, err := domain.NewProduct(first.ID, "a fine hat", 1999, "https://img.example.com/hat.png")
	require.NoError(t, err)
	require.NoError(t, f.productStore.Create(context.Background(), product))

	accounts, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	for _, account := range accounts {
		if account.ID == first.ID {
			require.Len(t, account.Products, 1)
			assert.Equal(t, product.ID, account.Products[0].ID)
		} else {
			assert.Empty(t, account.Products)
		}
	}
}
