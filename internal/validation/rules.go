// Package validation provides custom validation rules for the application.
package validation

import (
	"strconv"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/cardguard/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// CardID holds the rules applied to presented and registered card identifiers.
// Any non-empty string is accepted; the identifier is otherwise opaque.
var CardID = []validation.Rule{
	validation.Required,
}

// PinLength validates that a PIN has at least MinLength characters.
type PinLength struct {
	MinLength int
}

// Validate checks the PIN length requirement.
func (p PinLength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_pin_type", "pin must be a string")
	}

	if len([]rune(s)) < p.MinLength {
		return validation.NewError(
			"validation_pin_min_length",
			"pin must be at least "+strconv.Itoa(p.MinLength)+" characters",
		)
	}

	return nil
}
