// Package validators contains the field validators used throughout the
// application. They are pure functions: deterministic, side-effect free
// and never consult the database. Every error wraps apperr.ErrValidation.
package validators

import (
	"fmt"
	"net/mail"
	"strings"

	"taskwell/task-api/internal/apperr"
)

var (
	ErrEmailEmpty   = fmt.Errorf("%w: no email address provided", apperr.ErrValidation)
	ErrEmailInvalid = fmt.Errorf("%w: invalid email address provided", apperr.ErrValidation)
)

// EmailValidator checks for a plain local@domain.tld address. Display
// names and addresses without a dotted domain are rejected.
func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return ErrEmailInvalid
	}

	at := strings.LastIndex(e, "@")
	if at < 1 || !strings.Contains(e[at+1:], ".") {
		return ErrEmailInvalid
	}

	return nil
}
