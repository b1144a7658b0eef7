package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for CartItem
var (
	ErrEmptyCartItemID      = errors.New("cart item ID cannot be empty")
	ErrEmptyCartItemOwner   = errors.New("cart item owner cannot be empty")
	ErrEmptyCartItemProduct = errors.New("cart item product cannot be empty")
	ErrInvalidQuantity      = errors.New("cart item quantity must be at least 1")
)

// CartItem is one distinct product line in an account's cart.
// At most one CartItem exists per (owner, product) pair at any time;
// repeated adds increment Quantity instead of creating a second line.
// Owner and Product references are immutable after creation.
type CartItem struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Hydration fields, resolved on demand by the service layer.
	Product *Product `json:"product,omitempty"`
	Owner   *Account `json:"user,omitempty"`
}

// NewCartItem creates a new cart line with quantity 1 for the given
// (owner, product) pair. Returns an error if validation fails.
func NewCartItem(ownerID, productID uuid.UUID) (*CartItem, error) {
	item := &CartItem{
		ID:        uuid.New(),
		ProductID: productID,
		OwnerID:   ownerID,
		Quantity:  1,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the CartItem has valid data.
// Returns an error if any field fails validation.
func (c *CartItem) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCartItemID
	}

	if c.OwnerID == uuid.Nil {
		return ErrEmptyCartItemOwner
	}

	if c.ProductID == uuid.Nil {
		return ErrEmptyCartItemProduct
	}

	if c.Quantity < 1 {
		return ErrInvalidQuantity
	}

	return nil
}
