// Package security holds the auth-gate validation rules: email shape,
// password policies, and login throttling. Everything here runs before any
// network call so malformed input never reaches Firebase.
package security

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

const maxEmailLen = 254

// MinSignInPasswordLen is the lenient rule applied at sign-in; the composed
// policy below only applies to new passwords at sign-up.
const MinSignInPasswordLen = 6

const minSignUpPasswordLen = 8

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	ErrEmailEmpty       = errors.New("security: email is required")
	ErrEmailTooLong     = errors.New("security: email address is too long")
	ErrEmailHasSpaces   = errors.New("security: email cannot contain spaces")
	ErrEmailMalformed   = errors.New("security: invalid email format")
	ErrPasswordTooShort = errors.New("security: password is too short")
	ErrPasswordNoUpper  = errors.New("security: password must contain an uppercase letter")
	ErrPasswordNoLower  = errors.New("security: password must contain a lowercase letter")
	ErrPasswordNoDigit  = errors.New("security: password must contain a number")
	ErrPasswordNoSymbol = errors.New("security: password must contain a special character")
	ErrPasswordMismatch = errors.New("security: passwords do not match")
)

// NormalizeEmail lowercases and trims; apply before validation and before
// any lookup so "A@x.co" and "a@x.co" are the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail applies the conservative RFC-like rules from the signup form.
// Expects a normalized email.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailEmpty
	}
	if len(email) > maxEmailLen {
		return ErrEmailTooLong
	}
	if strings.ContainsAny(email, " \t") {
		return ErrEmailHasSpaces
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailMalformed
	}
	return nil
}

// ValidateSignInPassword applies the lenient sign-in rule only.
func ValidateSignInPassword(password string) error {
	if len(password) < MinSignInPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateSignUpPassword applies the composed policy: min 8 chars, at least
// one uppercase, one lowercase, one digit, one symbol. All violations are
// returned so the form can show them inline together.
func ValidateSignUpPassword(password string) []error {
	var errs []error
	if len(password) < minSignUpPasswordLen {
		errs = append(errs, ErrPasswordTooShort)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasUpper {
		errs = append(errs, ErrPasswordNoUpper)
	}
	if !hasLower {
		errs = append(errs, ErrPasswordNoLower)
	}
	if !hasDigit {
		errs = append(errs, ErrPasswordNoDigit)
	}
	if !hasSymbol {
		errs = append(errs, ErrPasswordNoSymbol)
	}
	return errs
}

// ValidateSignUp runs the full sign-up gate: email + password policy +
// confirmation equality. Returns the first email error, then password
// violations, then mismatch.
func ValidateSignUp(email, password, confirm string) []error {
	var errs []error
	if err := ValidateEmail(email); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, ValidateSignUpPassword(password)...)
	if password != confirm {
		errs = append(errs, ErrPasswordMismatch)
	}
	return errs
}
