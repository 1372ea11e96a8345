package repository

import (
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// translate maps driver errors onto the application error kinds.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return util.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrap(util.ErrStorageConflict, op)
	case errors.Is(err, model.ErrValidation):
		return err
	default:
		return errors.Wrap(err, op)
	}
}

func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
