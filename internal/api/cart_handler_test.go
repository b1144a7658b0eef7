package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/api"
	"github.com/mercato/storefront-api/internal/domain"
	"github.com/mercato/storefront-api/internal/mocks"
	"github.com/mercato/storefront-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartAPIFixture struct {
	router        *chi.Mux
	accountStore  *mocks.MockAccountStore
	productStore  *mocks.MockProductStore
	cartItemStore *mocks.MockCartItemStore
	shopper       *domain.Account
	product       *domain.Product
}

func newCartAPIFixture(t *testing.T) *cartAPIFixture {
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

	cartService, err := service.NewCartService(cartItemStore, productStore, accountStore, nil)
	require.NoError(t, err)

	handler := api.NewCartHandler(cartService)

	r := chi.NewRouter()
	r.Post("/api/cart", handler.Add)
	r.Delete("/api/cart/{id}", handler.Delete)

	return &cartAPIFixture{
		router:        r,
		accountStore:  accountStore,
		productStore:  productStore,
		cartItemStore: cartItemStore,
		shopper:       shopper,
		product:       product,
	}
}

func TestCartAddEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("adds a product and returns the hydrated line", func(t *testing.T) {
		t.Parallel()
		f := newCartAPIFixture(t)

		rec := doJSON(t, f.router, http.MethodPost, "/api/cart", f.shopper.ID, map[string]interface{}{
			"product_id": f.product.ID,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.EqualValues(t, 1, resp["quantity"])
		require.Contains(t, resp, "product")
		assert.Contains(t, resp, "user")
	})

	t.Run("second add bumps the quantity on the same line", func(t *testing.T) {
		t.Parallel()
		f := newCartAPIFixture(t)

		payload := map[string]interface{}{"product_id": f.product.ID}
		rec := doJSON(t, f.router, http.MethodPost, "/api/cart", f.shopper.ID, payload)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, f.router, http.MethodPost, "/api/cart", f.shopper.ID, payload)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.EqualValues(t, 2, resp["quantity"])
		assert.Len(t, f.cartItemStore.Items, 1)
	})

	t.Run("unauthenticated add yields not logged in", func(t *testing.T) {
		t.Parallel()
		f := newCartAPIFixture(t)

		rec := doJSON(t, f.router, http.MethodPost, "/api/cart", uuid.Nil, map[string]interface{}{
			"product_id": f.product.ID,
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "not logged in")
	})

	t.Run("unknown product yields not found", func(t *testing.T) {
		t.Parallel()
		f := newCartAPIFixture(t)

		rec := doJSON(t, f.router, http.MethodPost, "/api/cart", f.shopper.ID, map[string]interface{}{
			"product_id": uuid.New(),
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCartDeleteEndpoint(t *testing.T) {
	t.Parallel()

	addLine := func(t *testing.T, f *cartAPIFixture) uuid.UUID {
		t.Helper()
		rec := doJSON(t, f.router, http.MethodPost, "/api/cart", f.shopper.ID, map[string]interface{}{
			"product_id": f.product.ID,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			ID uuid.UUID `json:"id"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp.ID
	}

	t.Run("owner removes a line and receives the snapshot", func(t *testing.T) {
		t.Parallel()
		f := newCartAPIFixture(t)
		lineID := addLine(t, f)

		rec := doJSON(t, f.router, http.MethodDelete, "/api/cart/"+lineID.String(), f.shopper.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, lineID.String(), resp["id"])
		assert.Contains(t, resp, "product")

		assert.Empty(t, f.cartItemStore.Items)
	})

	t.Run("removing someone else's line yields forbidden", func(t *testing.T) {
		t.Parallel()
		f := newCartAPIFixture(t)
		lineID := addLine(t, f)

		intruder, err := domain.NewAccount("intruder@example.com", "hashed:secret123")
		require.NoError(t, err)
		require.NoError(t, f.accountStore.Create(context.Background(), intruder))

		rec := doJSON(t, f.router, http.MethodDelete, "/api/cart/"+lineID.String(), intruder.ID, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "not authorized")

		assert.Len(t, f.cartItemStore.Items, 1, "the line must survive the rejected delete")
	})

	t.Run("unknown line yields not found", func(t *testing.T) {
		t.Parallel()
		f := newCartAPIFixture(t)

		rec := doJSON(t, f.router, http.MethodDelete, "/api/cart/"+uuid.NewString(), f.shopper.ID, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed line ID yields bad request", func(t *testing.T) {
		t.Parallel()
		f := newCartAPIFixture(t)

		rec := doJSON(t, f.router, http.MethodDelete, "/api/cart/not-a-uuid", f.shopper.ID, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
