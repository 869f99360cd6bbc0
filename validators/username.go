package validators

import (
	"fmt"
	"regexp"
	"strings"

	"taskwell/task-api/internal/apperr"
)

var (
	ErrUsernameEmpty    = fmt.Errorf("%w: no username provided", apperr.ErrValidation)
	ErrUsernameTooShort = fmt.Errorf("%w: username must be at least 3 characters long", apperr.ErrValidation)
	ErrUsernameTooLong  = fmt.Errorf("%w: username can't be longer than 50 characters", apperr.ErrValidation)
	ErrUsernameInvalid  = fmt.Errorf("%w: username can only contain letters, numbers, dots and underscores, with no consecutive dots or underscores", apperr.ErrValidation)
)

var usernameCharset = regexp.MustCompile(`^[a-zA-Z0-9._]+$`)

// UsernameValidator checks the canonical username shape: 3-50 characters,
// alphanumeric plus '.' and '_', where neither separator may repeat
// ("a..b" and "a__b" are rejected, "a._b" is fine).
func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	if len(u) < 3 {
		return ErrUsernameTooShort
	}

	if len(u) > 50 {
		return ErrUsernameTooLong
	}

	if !usernameCharset.MatchString(u) {
		return ErrUsernameInvalid
	}

	if strings.Contains(u, "..") || strings.Contains(u, "__") {
		return ErrUsernameInvalid
	}

	return nil
}
