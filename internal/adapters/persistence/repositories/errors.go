package repositories

import (
	"errors"

	"fixithub/internal/core/domain"

	"gorm.io/gorm"
)

// translate maps driver-level errors onto domain errors. conflict is the
// error returned for unique-index violations of the calling entity.
func translate(err error, conflict error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case conflict != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict
	}
	return err
}
