package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/domain"
	"github.com/mercato/storefront-api/internal/store"
)

// MockAccountStore implements store.AccountStore for testing
type MockAccountStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, account *domain.Account) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.Account, error)
	ListFn       func(ctx context.Context) ([]*domain.Account, error)

	// Data for default implementation, keyed by the stored email
	Accounts map[string]*domain.Account

	LastAccountID   uuid.UUID
	CreateError     error
	GetByEmailError error
}

// NewMockAccountStore creates a new mock store with initialized defaults
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{
		Accounts: make(map[string]*domain.Account),
	}
}

// Create implements the AccountStore interface
func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, account)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Accounts[account.Email]; exists {
		return store.ErrEmailExists
	}

	m.Accounts[account.Email] = account
	m.LastAccountID = account.ID
	return nil
}

// GetByID implements the AccountStore interface
func (m *MockAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, account := range m.Accounts {
		if account.ID == id {
			return account, nil
		}
	}

	return nil, store.ErrAccountNotFound
}

// GetByEmail implements the AccountStore interface. Like the real store,
// lookup is an exact match against the stored email.
func (m *MockAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}

	account, exists := m.Accounts[email]
	if !exists {
		return nil, store.ErrAccountNotFound
	}

	return account, nil
}

// List implements the AccountStore interface
func (m *MockAccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	accounts := make([]*domain.Account, 0, len(m.Accounts))
	for _, account := range m.Accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

// WithTx implements the AccountStore interface for transaction support
func (m *MockAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	// For mock purposes, just return the same mock
	return m
}
