package services

import "github.com/go-playground/validator/v10"

// Validator reports whether a candidate long URL may be shortened.
type Validator func(candidate string) bool

// NewURLValidator accepts absolute http and https URLs and rejects everything else,
// including the empty string.
func NewURLValidator() Validator {
	validate := validator.New()
	return func(candidate string) bool {
		return validate.Var(candidate, "required,http_url") == nil
	}
}
