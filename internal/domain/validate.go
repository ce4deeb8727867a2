package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateNewContestant applies schema validation to an insert payload.
// Malformed configurations are rejected here so they can never reach a
// session.
func ValidateNewContestant(c NewContestant) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContestant, err)
	}
	return nil
}
