package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrNameTooLong     = errors.New("name exceeds maximum length")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidCurrency = errors.New("invalid currency code")
)

// MaxNameLength bounds account, product and master names.
const MaxNameLength = 255

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)
)

// ValidateName trims name and checks it is present and not too long. label
// prefixes the returned error.
func ValidateName(label, name string) (string, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return name, fmt.Errorf("%s: %w", label, ErrNameRequired)
	}

	if len(name) > MaxNameLength {
		return name, fmt.Errorf("%s: %w: %d characters allowed", label, ErrNameTooLong, MaxNameLength)
	}

	return name, nil
}

// ValidateEmail validates email format. An empty address is accepted.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateCurrency checks code is a three-letter upper-case currency code.
func ValidateCurrency(code string) error {
	if !currencyRegex.MatchString(code) {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}

	return nil
}
