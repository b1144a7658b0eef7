package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Account
var (
	ErrEmptyAccountID      = errors.New("account ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// MinPasswordLength is the minimum accepted password length, measured
// after trimming surrounding whitespace.
const MinPasswordLength = 6

// Account represents a registered storefront account. The email is stored
// in its normalized form (trimmed, lowercased) and is globally unique.
type Account struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Hydration fields, resolved on demand by the service layer.
	// They are never persisted inline; the stores only know foreign keys.
	Products []*Product  `json:"products,omitempty"`
	Cart     []*CartItem `json:"carts,omitempty"`
}

// NormalizeEmail returns the canonical form of an email address used as the
// account uniqueness key: surrounding whitespace removed, lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewAccount creates a new Account with the given normalized email and
// bcrypt password hash. It generates a new UUID and sets the timestamps.
// Returns an error if validation fails.
func NewAccount(email, hashedPassword string) (*Account, error) {
	account := &Account{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks if the Account has valid data.
// Returns an error if any field fails validation.
func (a *Account) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAccountID
	}

	if a.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(a.Email) {
		return ErrInvalidEmail
	}

	if a.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}

// ValidatePassword checks a raw password against the signup rules.
// The length check applies to the trimmed password.
func ValidatePassword(raw string) error {
	if len(strings.TrimSpace(raw)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// validEmailFormat performs a structural check of the email address:
// a non-empty local part, an @, and a domain containing an interior dot.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
