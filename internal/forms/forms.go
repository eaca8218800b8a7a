// Package forms holds the input rules shared by the public form endpoints.
package forms

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	validate     = validator.New()
)

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// MissingRequired reports whether any `validate:"required"` field of v is empty.
func MissingRequired(v interface{}) bool {
	return validate.Struct(v) != nil
}
