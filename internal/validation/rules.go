// Package validation holds the request rules shared by the HTTP DTOs on top of
// github.com/jellydator/validation.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)
)

// WrapValidationError turns a DTO validation failure into apperrors.ErrInvalidInput so the
// HTTP layer answers 422 with the field messages.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// charClass is one character requirement of a password policy.
type charClass struct {
	code    string
	message string
	match   func(rune) bool
}

var (
	upperClass = charClass{
		code:    "validation_password_uppercase",
		message: "password must contain at least one uppercase letter",
		match:   unicode.IsUpper,
	}
	lowerClass = charClass{
		code:    "validation_password_lowercase",
		message: "password must contain at least one lowercase letter",
		match:   unicode.IsLower,
	}
	numberClass = charClass{
		code:    "validation_password_number",
		message: "password must contain at least one number",
		match:   unicode.IsNumber,
	}
	specialClass = charClass{
		code:    "validation_password_special",
		message: "password must contain at least one special character",
		match:   func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) },
	}
)

// PasswordStrength is a validation.Rule for raw passwords. Lengths count runes.
// A zero MaxLength means no upper bound.
type PasswordStrength struct {
	MinLength      int
	MaxLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// AdminPassword is the policy applied to passwords chosen for new admin principals.
var AdminPassword = PasswordStrength{
	MinLength:     8,
	MaxLength:     128,
	RequireLower:  true,
	RequireNumber: true,
}

func (p PasswordStrength) classes() []charClass {
	var out []charClass
	if p.RequireUpper {
		out = append(out, upperClass)
	}
	if p.RequireLower {
		out = append(out, lowerClass)
	}
	if p.RequireNumber {
		out = append(out, numberClass)
	}
	if p.RequireSpecial {
		out = append(out, specialClass)
	}
	return out
}

// Validate implements validation.Rule.
func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	n := utf8.RuneCountInString(s)
	if n < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			fmt.Sprintf("password must be at least %d characters", p.MinLength),
		)
	}
	if p.MaxLength > 0 && n > p.MaxLength {
		return validation.NewError(
			"validation_password_max_length",
			fmt.Sprintf("password must be at most %d characters", p.MaxLength),
		)
	}

	for _, class := range p.classes() {
		if strings.IndexFunc(s, class.match) < 0 {
			return validation.NewError(class.code, class.message)
		}
	}
	return nil
}

func stringRule(check func(string) bool, code, message string) validation.StringRule {
	return validation.NewStringRuleWithError(check, validation.NewError(code, message))
}

// Email checks a loose address shape; deliverability is not verified.
var Email = stringRule(emailPattern.MatchString, "validation_email_format", "must be a valid email address")

// NoWhitespace rejects leading or trailing whitespace.
var NoWhitespace = stringRule(
	func(s string) bool { return s == strings.TrimSpace(s) },
	"validation_no_whitespace",
	"must not contain leading or trailing whitespace",
)

// NotBlank rejects strings that are empty once trimmed.
var NotBlank = stringRule(
	func(s string) bool { return strings.TrimSpace(s) != "" },
	"validation_not_blank",
	"must not be blank",
)

// Username restricts principal usernames to letters, digits, dots, underscores and hyphens.
var Username = stringRule(
	usernamePattern.MatchString,
	"validation_username_format",
	"must contain only letters, digits, dots, underscores or hyphens",
)
