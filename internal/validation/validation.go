package validation

import (
	"fmt"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID     = fmt.Errorf("invalid UUID format")
	ErrInvalidFundCode = fmt.Errorf("invalid fund code")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateFundCode checks a six-digit fund code.
func ValidateFundCode(code string) error {
	if len(code) != 6 {
		return fmt.Errorf("%w: %s", ErrInvalidFundCode, code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %s", ErrInvalidFundCode, code)
		}
	}
	return nil
}
