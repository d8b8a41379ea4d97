// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package account

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var (
	orcidPattern = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{4}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidationError reports which registration field was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ValidateORCID reports whether v has the form 0000-0000-0000-0000.
func ValidateORCID(v string) bool { return orcidPattern.MatchString(v) }

// ValidateEmail reports whether v looks like an email address.
func ValidateEmail(v string) bool { return emailPattern.MatchString(v) }

// ValidateIdentifier reports whether v is an email or an ORCID iD.
func ValidateIdentifier(v string) bool { return ValidateEmail(v) || ValidateORCID(v) }

// ValidatePassword reports whether v is long enough.
func ValidatePassword(v string) bool { return utf8.RuneCountInString(v) >= MinPasswordLength }

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	ORCID           string `json:"orcidId"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Avatar          string `json:"avatar,omitempty"`
}

// Validate checks the fields in the order the sign-up form does and
// returns the first failure.
func (r RegisterRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return &ValidationError{Field: "name", Message: "name is required"}
	case !ValidateORCID(r.ORCID):
		return &ValidationError{Field: "orcidId", Message: "use the format 0000-0000-0000-0000"}
	case !ValidateEmail(r.Email):
		return &ValidationError{Field: "email", Message: "enter a valid email address"}
	case !ValidatePassword(r.Password):
		return &ValidationError{Field: "password", Message: fmt.Sprintf("must have at least %d characters", MinPasswordLength)}
	case r.ConfirmPassword != "" && r.ConfirmPassword != r.Password:
		return &ValidationError{Field: "confirmPassword", Message: "passwords do not match"}
	}
	return nil
}
