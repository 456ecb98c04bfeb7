package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "antrian/internal/errors"
)

// notFound converts gorm's not-found error into the application taxonomy.
func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, apperrors.ErrNotFound)...)
	}
	return err
}

// duplicate converts a unique constraint violation into ErrConflict. It relies on
// gorm.Config.TranslateError being set.
func duplicate(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: "+format+" already exists", append([]interface{}{apperrors.ErrConflict}, args...)...)
	}
	return err
}
