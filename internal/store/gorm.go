package store

import (
	"errors"
	"strings"

	"taskwell/task-api/internal/apperr"

	"gorm.io/gorm"
)

// translateErr maps gorm errors onto the shared taxonomy. Duplicate-key
// detection has a string fallback because the SQLite driver doesn't
// always translate constraint failures into gorm.ErrDuplicatedKey.
func translateErr(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrConflict
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key") {
		return apperr.ErrConflict
	}

	return err
}
