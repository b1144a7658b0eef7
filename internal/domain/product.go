package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Product
var (
	ErrEmptyProductID          = errors.New("product ID cannot be empty")
	ErrEmptyProductOwner       = errors.New("product owner cannot be empty")
	ErrEmptyProductDescription = errors.New("product description cannot be empty")
	ErrEmptyProductImageURL    = errors.New("product image URL cannot be empty")
	ErrInvalidProductPrice     = errors.New("product price must be positive")
)

// Product represents a listing offered by an account. The owner is fixed
// at creation and only the owner may modify the listing.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Price       int64     `json:"price"` // price in cents
	ImageURL    string    `json:"image_url"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Owner is a hydration field resolved on demand by the service layer.
	Owner *Account `json:"user,omitempty"`
}

// NewProduct creates a new Product owned by the given account.
// It generates a new UUID and sets the timestamps.
// Returns an error if validation fails.
func NewProduct(ownerID uuid.UUID, description string, price int64, imageURL string) (*Product, error) {
	product := &Product{
		ID:          uuid.New(),
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate checks if the Product has valid data.
// A zero price fails validation: the create contract treats a missing or
// zero price as "not provided", matching the update semantics.
func (p *Product) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProductID
	}

	if p.OwnerID == uuid.Nil {
		return ErrEmptyProductOwner
	}

	if p.Description == "" {
		return ErrEmptyProductDescription
	}

	if p.Price <= 0 {
		return ErrInvalidProductPrice
	}

	if p.ImageURL == "" {
		return ErrEmptyProductImageURL
	}

	return nil
}
