package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
	"github.com/mercato/storefront-api/internal/mocks"
	"github.com/mercato/storefront-api/internal/service"
	"github.com/mercato/storefront-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartServiceFixture struct {
	svc           service.CartService
	accountStore  *mocks.MockAccountStore
	productStore  *mocks.MockProductStore
	cartItemStore *mocks.MockCartItemStore
	shopper       *domain.Account
	product       *domain.Product
}

func newCartServiceFixture(t *testing.T) *cartServiceFixture {
	t.Helper()

	accountStore := mocks.NewMockAccountStore()
	productStore := mocks.NewMockProductStore()
	cartItemStore := mocks.NewMockCartItemStore()

	shopper, err := domain.NewAccount("shopper@example.com", "hashed:secret123")
	require.NoError(t, err)
	require.NoError(t, accountStore.Create(context.Background(), shopper))

	seller, err := domain.NewAccount("seller@example.com", "hashed:secret123")
	require.NoError(t, err)
	require.NoError(t, accountStore.Create(context.Background(), seller))

	product, err := domain.NewProduct(seller.ID, "a fine hat", 1999, "https://img.example.com/hat.png")
	require.NoError(t, err)
	require.NoError(t, productStore.Create(context.Background(), product))

	svc, err := service.NewCartService(cartItemStore, productStore, accountStore, nil)
	require.NoError(t, err)

	return &cartServiceFixture{
		svc:           svc,
		accountStore:  accountStore,
		productStore:  productStore,
		cartItemStore: cartItemStore,
		shopper:       shopper,
		product:       product,
	}
}

func TestAddToCart(t *testing.T) {
	t.Parallel()

	t.Run("first add creates a line with quantity one", func(t *testing.T) {
		t.Parallel()
		f := newCartServiceFixture(t)

		line, err := f.svc.AddToCart(context.Background(), f.shopper.ID, f.product.ID)
		require.NoError(t, err)

		assert.Equal(t, 1, line.Quantity)
		assert.Equal(t, f.shopper.ID, line.OwnerID)
		require.NotNil(t, line.Product)
		assert.Equal(t, f.product.ID, line.Product.ID)
		require.NotNil(t, line.Owner)
		assert.Equal(t, f.shopper.ID, line.Owner.ID)
	})

	t.Run("repeat add increments the same line", func(t *testing.T) {
		t.Parallel()
		f := newCartServiceFixture(t)

		first, err := f.svc.AddToCart(context.Background(), f.shopper.ID, f.product.ID)
		require.NoError(t, err)

		second, err := f.svc.AddToCart(context.Background(), f.shopper.ID, f.product.ID)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID, "repeat add must reuse the existing line")
		assert.Equal(t, 2, second.Quantity)
		assert.Len(t, f.cartItemStore.Items, 1)
	})

	t.Run("concurrent adds end up on one line", func(t *testing.T) {
		t.Parallel()
		f := newCartServiceFixture(t)

		const adds = 16
		var wg sync.WaitGroup
		errs := make([]error, adds)
		for i := 0; i < adds; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.svc.AddToCart(context.Background(), f.shopper.ID, f.product.ID)
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}

		lines, err := f.cartItemStore.ListByOwner(context.Background(), f.shopper.ID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, adds, lines[0].Quantity)
	})

	t.Run("distinct products get distinct lines", func(t *testing.T) {
		t.Parallel()
		f := newCartServiceFixture(t)

		other, err := domain.NewProduct(f.product.OwnerID, "a sturdy boot", 4999, "https://img.example.com/boot.png")
		require.NoError(t, err)
		require.NoError(t, f.productStore.Create(context.Background(), other))

		_, err = f.svc.AddToCart(context.Background(), f.shopper.ID, f.product.ID)
		require.NoError(t, err)
		_, err = f.svc.AddToCart(context.Background(), f.shopper.ID, other.ID)
		require.NoError(t, err)

		lines, err := f.cartItemStore.ListByOwner(context.Background(), f.shopper.ID)
		require.NoError(t, err)
		assert.Len(t, lines, 2)
	})

	t.Run("requires authentication", func(t *testing.T) {
		t.Parallel()
		f := newCartServiceFixture(t)

		line, err := f.svc.AddToCart(context.Background(), uuid.Nil, f.product.ID)
		assert.ErrorIs(t, err, service.ErrNotLoggedIn)
		assert.Nil(t, line)
	})

	t.Run("unknown product yields not found", func(t *testing.T) {
		t.Parallel()
		f := newCartServiceFixture(t)

		line, err := f.svc.AddToCart(context.Background(), f.shopper.ID, uuid.New())
		assert.ErrorIs(t, err, store.ErrProductNotFound)
		assert.Nil(t, line)
		assert.Empty(t, f.cartItemStore.Items)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		t.Parallel()
		f := newCartServiceFixture(t)
		f.cartItemStore.UpsertError = assert.AnError

		line, err := f.svc.AddToCart(context.Background(), f.shopper.ID, f.product.ID)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, line)
	})
}

func TestRemoveFromCart(t *testing.T) {
	t.Parallel()

	t.Run("owner removes a line and gets the snapshot back", func(t *testing.T) {
		t.Parallel()
		f := newCartServiceFixture(t)

		line, err := f.svc.AddToCart(context.Background(), f.shopper.ID, f.product.ID)
		require.NoError(t, err)

		removed, err := f.svc.RemoveFromCart(context.Background(), f.shopper.ID, line.ID)
		require.NoError(t, err)

		assert.Equal(t, line.ID, removed.ID)
		require.NotNil(t, removed.Product)
		assert.Equal(t, f.product.ID, removed.Product.ID)

		// The line is gone from the store.
		_, err = f.cartItemStore.GetByID(context.Background(), line.ID)
		assert.ErrorIs(t, err, store.ErrCartItemNotFound)
	})

	t.Run("non-owner cannot remove someone else's line", func(t *testing.T) {
		t.Parallel()
		f := newCartServiceFixture(t)

		line, err := f.svc.AddToCart(context.Background(), f.shopper.ID, f.product.ID)
		require.NoError(t, err)

		intruder, err := domain.NewAccount("intruder@example.com", "hashed:secret123")
		require.NoError(t, err)
		require.NoError(t, f.accountStore.Create(context.Background(), intruder))

		removed, err := f.svc.RemoveFromCart(context.Background(), intruder.ID, line.ID)
		assert.ErrorIs(t, err, service.ErrNotAuthorized)
		assert.Nil(t, removed)

		// The shopper's line survives.
		_, err = f.cartItemStore.GetByID(context.Background(), line.ID)
		assert.NoError(t, err)
	})

	t.Run("requires authentication", func(t *testing.T) {
		t.Parallel()
		f := newCartServiceFixture(t)

		removed, err := f.svc.RemoveFromCart(context.Background(), uuid.Nil, uuid.New())
		assert.ErrorIs(t, err, service.ErrNotLoggedIn)
		assert.Nil(t, removed)
	})

	t.Run("unknown line yields not found", func(t *testing.T) {
		t.Parallel()
		f := newCartServiceFixture(t)

		removed, err := f.svc.RemoveFromCart(context.Background(), f.shopper.ID, uuid.New())
		assert.ErrorIs(t, err, store.ErrCartItemNotFound)
		assert.Nil(t, removed)
	})
}
