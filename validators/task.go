package validators

import (
	"fmt"
	"time"

	"taskwell/task-api/internal/apperr"
)

var (
	ErrTitleEmpty         = fmt.Errorf("%w: no task title provided", apperr.ErrValidation)
	ErrTitleTooLong       = fmt.Errorf("%w: task title can't be longer than 100 characters", apperr.ErrValidation)
	ErrDescriptionTooLong = fmt.Errorf("%w: task description can't be longer than 500 characters", apperr.ErrValidation)
	ErrDueDateInPast      = fmt.Errorf("%w: due date must be in the present or future", apperr.ErrValidation)
)

func TaskTitleValidator(t string) error {
	if t == "" {
		return ErrTitleEmpty
	}

	if len(t) > 100 {
		return ErrTitleTooLong
	}

	return nil
}

func TaskDescriptionValidator(d string) error {
	if len(d) > 500 {
		return ErrDescriptionTooLong
	}

	return nil
}

// DueDateValidator rejects dates before the start of the current day,
// mirroring the present-or-future rule applied at task creation.
func DueDateValidator(d *time.Time) error {
	if d == nil {
		return nil
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if d.Before(startOfDay) {
		return ErrDueDateInPast
	}

	return nil
}
