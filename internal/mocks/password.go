package mocks

import "fmt"

// MockPasswordHasher implements auth.PasswordHasher for testing. The
// default behavior produces a deterministic "hash" that MockPasswordVerifier
// understands, so auth flows can round-trip without bcrypt's cost.
type MockPasswordHasher struct {
	HashFn  func(password string) (string, error)
	HashErr error
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}

	if m.HashErr != nil {
		return "", m.HashErr
	}

	return "hashed:" + password, nil
}

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	CompareFn  func(hashedPassword, password string) error
	CompareErr error
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}

	if m.CompareErr != nil {
		return m.CompareErr
	}

	if hashedPassword != "hashed:"+password {
		return fmt.Errorf("password mismatch")
	}

	return nil
}
