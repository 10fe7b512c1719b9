package validation

import (
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/cardguard/internal/errors"
)

func TestPinLength(t *testing.T) {
	rule := PinLength{MinLength: 4}

	tests := []struct {
		name      string
		pin       string
		shouldErr bool
		errMsg    string
	}{
		{
			name:      "exact minimum",
			pin:       "1234",
			shouldErr: false,
		},
		{
			name:      "longer than minimum",
			pin:       "12345678",
			shouldErr: false,
		},
		{
			name:      "too short",
			pin:       "123",
			shouldErr: true,
			errMsg:    "pin must be at least 4 characters",
		},
		{
			name:      "empty",
			pin:       "",
			shouldErr: true,
			errMsg:    "pin must be at least 4 characters",
		},
		{
			name:      "multibyte characters count once",
			pin:       "äöüß",
			shouldErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.pin)
			if tt.shouldErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("non string value", func(t *testing.T) {
		assert.Error(t, rule.Validate(1234))
	})
}

func TestCardID(t *testing.T) {
	tests := []struct {
		name      string
		cardID    string
		shouldErr bool
	}{
		{name: "regular identifier", cardID: "CARD-1234", shouldErr: false},
		{name: "single character", cardID: "x", shouldErr: false},
		{name: "empty", cardID: "", shouldErr: true},
		{name: "whitespace only", cardID: "   ", shouldErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.cardID, CardID...)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNoWhitespace(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{name: "no whitespace", input: "validstring", shouldErr: false},
		{name: "leading whitespace", input: " validstring", shouldErr: true},
		{name: "trailing whitespace", input: "validstring ", shouldErr: true},
		{name: "internal spaces allowed", input: "valid string", shouldErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NoWhitespace.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	err := WrapValidationError(validation.NewError("code", "must not be blank"))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "must not be blank")
}
