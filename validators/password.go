package validators

import (
	"fmt"
	"strings"

	"taskwell/task-api/internal/apperr"
)

var (
	ErrPasswordEmpty    = fmt.Errorf("%w: no password provided", apperr.ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least 8 characters long", apperr.ErrValidation)
	ErrPasswordTooLong  = fmt.Errorf("%w: password can't be longer than 100 characters", apperr.ErrValidation)
	ErrPasswordTooWeak  = fmt.Errorf("%w: password must contain an uppercase letter, a lowercase letter, a digit and one of @$!%%*?&", apperr.ErrValidation)
	ErrPasswordInvalid  = fmt.Errorf("%w: password contains invalid characters", apperr.ErrValidation)
)

const passwordSpecials = "@$!%*?&"

// PasswordValidator enforces the credential strength rule: 8-100
// characters drawn from letters, digits and the special set, with at
// least one of each character class present.
func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) < 8 {
		return ErrPasswordTooShort
	}

	if len(p) > 100 {
		return ErrPasswordTooLong
	}

	var upper, lower, digit, special bool

	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return ErrPasswordInvalid
		}
	}

	if !upper || !lower || !digit || !special {
		return ErrPasswordTooWeak
	}

	return nil
}
