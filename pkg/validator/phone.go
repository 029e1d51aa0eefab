package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyPhone indicates the phone number is empty
	ErrEmptyPhone = errors.New("phone number cannot be empty")

	// ErrMissingPlus indicates the phone number does not start with '+'
	ErrMissingPlus = errors.New("phone number must start with '+'")

	// ErrInvalidFormat indicates the phone number is not a valid E.164 number
	ErrInvalidFormat = errors.New("phone number must be '+' followed by 8 to 15 digits starting with 1-9")
)

// e164Regex matches E.164: a '+' followed by 8-15 digits, first digit 1-9.
var e164Regex = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// PhoneValidator validates WhatsApp contact numbers in E.164 format
type PhoneValidator struct{}

// NewPhoneValidator creates a new phone validator instance
func NewPhoneValidator() *PhoneValidator {
	return &PhoneValidator{}
}

// Validate validates an E.164 phone number.
// Accepts formats like +355691234567, +355 69 123 4567, or +355-69-123-4567.
// Returns the sanitized number ('+' and digits only) and an error if invalid.
func (v *PhoneValidator) Validate(phone string) (string, error) {
	if phone == "" {
		return "", ErrEmptyPhone
	}

	sanitized := v.Sanitize(phone)

	if !strings.HasPrefix(sanitized, "+") {
		return "", ErrMissingPlus
	}

	if !e164Regex.MatchString(sanitized) {
		return "", ErrInvalidFormat
	}

	return sanitized, nil
}

// Sanitize removes common separators while preserving the leading '+'.
func (v *PhoneValidator) Sanitize(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	phone = strings.ReplaceAll(phone, "(", "")
	phone = strings.ReplaceAll(phone, ")", "")
	phone = strings.ReplaceAll(phone, ".", "")
	return phone
}

// IsValid is a convenience method that returns true if phone is valid
func (v *PhoneValidator) IsValid(phone string) bool {
	_, err := v.Validate(phone)
	return err == nil
}
