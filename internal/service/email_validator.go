package service

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"useradmin/internal/errors"
)

// EmailTag is the validator tag bound to IsEmail.
const EmailTag = "useremail"

// emailRegex matches local-part@domain.tld where neither side contains whitespace or '@'.
// It is a "good enough" check, not RFC 5322.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether v is a string matching the email pattern. RE2's \s
// only covers ASCII spaces, so any Unicode space or BOM is rejected first.
func IsEmail(v any) bool {
	s, ok := v.(string)
	if !ok || strings.ContainsFunc(s, isSpace) {
		return false
	}
	return emailRegex.MatchString(s)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// EmailValidator validates user email addresses.
type EmailValidator struct{}

// NewEmailValidator creates a new email validator.
func NewEmailValidator() *EmailValidator {
	return &EmailValidator{}
}

// ValidateEmail returns ErrInvalidEmail when email does not match the pattern.
func (v *EmailValidator) ValidateEmail(email string) error {
	if !IsEmail(email) {
		return errors.ErrInvalidEmail
	}
	return nil
}

// Register binds the useremail tag on a go-playground validator.
func (v *EmailValidator) Register(validate *validator.Validate) error {
	return validate.RegisterValidation(EmailTag, func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().Interface())
	})
}
