package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
	"github.com/mercato/storefront-api/internal/platform/postgres"
	"github.com/mercato/storefront-api/internal/store"
	"github.com/mercato/storefront-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a real Postgres instance and skip themselves
// when no database URL is configured. Each test runs inside a rolled-back
// transaction for isolation.

func createAccount(t *testing.T, tx *sql.Tx, email string) *domain.Account {
	t.Helper()

	accounts := postgres.NewPostgresAccountStore(tx, nil)
	account, err := domain.NewAccount(email, "hashed:secret123")
	require.NoError(t, err)
	require.NoError(t, accounts.Create(context.Background(), account))
	return account
}

func createProduct(t *testing.T, tx *sql.Tx, ownerID uuid.UUID, description string) *domain.Product {
	t.Helper()

	products := postgres.NewPostgresProductStore(tx, nil)
	product, err := domain.NewProduct(ownerID, description, 1999, "https://img.example.com/item.png")
	require.NoError(t, err)
	require.NoError(t, products.Create(context.Background(), product))
	return product
}

func TestPostgresAccountStore(t *testing.T) {
	db := testdb.Open(t)

	t.Run("create and read back", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			accounts := postgres.NewPostgresAccountStore(tx, nil)
			account := createAccount(t, tx, "a@example.com")

			byID, err := accounts.GetByID(context.Background(), account.ID)
			require.NoError(t, err)
			assert.Equal(t, account.Email, byID.Email)

			byEmail, err := accounts.GetByEmail(context.Background(), "a@example.com")
			require.NoError(t, err)
			assert.Equal(t, account.ID, byEmail.ID)
		})
	})

	t.Run("email lookup is exact", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			accounts := postgres.NewPostgresAccountStore(tx, nil)
			createAccount(t, tx, "a@example.com")

			_, err := accounts.GetByEmail(context.Background(), "A@example.com")
			assert.ErrorIs(t, err, store.ErrAccountNotFound)
		})
	})

	t.Run("duplicate email is rejected by the unique index", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			accounts := postgres.NewPostgresAccountStore(tx, nil)
			createAccount(t, tx, "a@example.com")

			dup, err := domain.NewAccount("a@example.com", "hashed:other")
			require.NoError(t, err)

			err = accounts.Create(context.Background(), dup)
			assert.ErrorIs(t, err, store.ErrEmailExists)
		})
	})

	t.Run("unknown ID yields account not found", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			accounts := postgres.NewPostgresAccountStore(tx, nil)

			_, err := accounts.GetByID(context.Background(), uuid.New())
			assert.ErrorIs(t, err, store.ErrAccountNotFound)
		})
	})
}

func TestPostgresProductStore(t *testing.T) {
	db := testdb.Open(t)

	t.Run("create, update, and list by owner", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			products := postgres.NewPostgresProductStore(tx, nil)
			owner := createAccount(t, tx, "owner@example.com")
			product := createProduct(t, tx, owner.ID, "a fine hat")

			product.Description = "an even finer hat"
			product.Price = 2499
			require.NoError(t, products.Update(context.Background(), product))

			got, err := products.GetByID(context.Background(), product.ID)
			require.NoError(t, err)
			assert.Equal(t, "an even finer hat", got.Description)
			assert.Equal(t, int64(2499), got.Price)

			owned, err := products.ListByOwner(context.Background(), owner.ID)
			require.NoError(t, err)
			assert.Len(t, owned, 1)
		})
	})

	t.Run("create with unknown owner violates the foreign key", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			products := postgres.NewPostgresProductStore(tx, nil)

			orphan, err := domain.NewProduct(uuid.New(), "ghost hat", 1999, "https://img.example.com/hat.png")
			require.NoError(t, err)

			err = products.Create(context.Background(), orphan)
			assert.ErrorIs(t, err, store.ErrInvalidEntity)
		})
	})

	t.Run("updating a missing product yields not found", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			products := postgres.NewPostgresProductStore(tx, nil)
			owner := createAccount(t, tx, "owner@example.com")

			phantom, err := domain.NewProduct(owner.ID, "phantom", 1999, "https://img.example.com/x.png")
			require.NoError(t, err)

			err = products.Update(context.Background(), phantom)
			assert.ErrorIs(t, err, store.ErrProductNotFound)
		})
	})
}

func TestPostgresCartItemStore(t *testing.T) {
	db := testdb.Open(t)

	t.Run("upsert inserts then increments", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			cartItems := postgres.NewPostgresCartItemStore(tx, nil)
			shopper := createAccount(t, tx, "shopper@example.com")
			product := createProduct(t, tx, shopper.ID, "a fine hat")

			first, err := domain.NewCartItem(shopper.ID, product.ID)
			require.NoError(t, err)

			inserted, err := cartItems.Upsert(context.Background(), first)
			require.NoError(t, err)
			assert.Equal(t, 1, inserted.Quantity)

			again, err := domain.NewCartItem(shopper.ID, product.ID)
			require.NoError(t, err)

			bumped, err := cartItems.Upsert(context.Background(), again)
			require.NoError(t, err)
			assert.Equal(t, inserted.ID, bumped.ID, "the unique index folds repeats onto one line")
			assert.Equal(t, 2, bumped.Quantity)

			lines, err := cartItems.ListByOwner(context.Background(), shopper.ID)
			require.NoError(t, err)
			assert.Len(t, lines, 1)
		})
	})

	t.Run("delete removes the line", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			cartItems := postgres.NewPostgresCartItemStore(tx, nil)
			shopper := createAccount(t, tx, "shopper@example.com")
			product := createProduct(t, tx, shopper.ID, "a fine hat")

			line, err := domain.NewCartItem(shopper.ID, product.ID)
			require.NoError(t, err)
			inserted, err := cartItems.Upsert(context.Background(), line)
			require.NoError(t, err)

			require.NoError(t, cartItems.Delete(context.Background(), inserted.ID))

			_, err = cartItems.GetByID(context.Background(), inserted.ID)
			assert.ErrorIs(t, err, store.ErrCartItemNotFound)
		})
	})

	t.Run("deleting a missing line yields not found", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			cartItems := postgres.NewPostgresCartItemStore(tx, nil)
			err := cartItems.Delete(context.Background(), uuid.New())
			assert.ErrorIs(t, err, store.ErrCartItemNotFound)
		})
	})
}

func TestRunInTransaction(t *testing.T) {
	db := testdb.Open(t)
	accounts := postgres.NewPostgresAccountStore(db, nil)

	t.Run("rolls back every write when the function fails", func(t *testing.T) {
		account, err := domain.NewAccount("rollback@example.com", "hashed:secret123")
		require.NoError(t, err)

		err = store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			if err := accounts.WithTx(tx).Create(ctx, account); err != nil {
				return err
			}
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)

		_, err = accounts.GetByEmail(context.Background(), "rollback@example.com")
		assert.ErrorIs(t, err, store.ErrAccountNotFound, "the rolled-back insert must not persist")
	})

	t.Run("commits when the function succeeds", func(t *testing.T) {
		email := "commit-" + uuid.NewString() + "@example.com"
		account, err := domain.NewAccount(email, "hashed:secret123")
		require.NoError(t, err)

		err = store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			return accounts.WithTx(tx).Create(ctx, account)
		})
		require.NoError(t, err)

		got, err := accounts.GetByEmail(context.Background(), email)
		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)

		// Committed data outlives the transaction; clean it up directly.
		_, err = db.ExecContext(context.Background(), "DELETE FROM accounts WHERE id = $1", account.ID)
		require.NoError(t, err)
	})
}
