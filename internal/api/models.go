package api

import (
	"github.com/google/uuid"
)

// Common request/response structures

// SignupRequest defines the payload for the account registration endpoint.
// The password floor matches the signup rule: 6 characters after trimming
// (the domain layer re-checks the trimmed length).
type SignupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	// AccountID is the unique identifier for the authenticated account
	AccountID uuid.UUID `json:"user_id"`

	// Token is the signed JWT used for API authorization
	Token string `json:"token"`
}

// CreateProductRequest defines the payload for product creation.
// A zero price fails the gt=0 check, matching the create rule that treats
// a zero price as missing.
type CreateProductRequest struct {
	Description string `json:"description" validate:"required"`
	Price       int64  `json:"price"       validate:"required,gt=0"`
	ImageURL    string `json:"image_url"   validate:"required"`
}

// UpdateProductRequest defines the payload for a partial product update.
// Omitted or zero-valued fields leave the stored values unchanged.
type UpdateProductRequest struct {
	Description string `json:"description"`
	Price       int64  `json:"price"       validate:"gte=0"`
	ImageURL    string `json:"image_url"`
}

// AddToCartRequest defines the payload for the add-to-cart endpoint.
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}
