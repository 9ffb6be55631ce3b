package service

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"gorm.io/gorm"

	"github.com/Skotchmaster/fanshop/internal/apperror"
)

// translate maps persistence errors onto the HTTP-facing taxonomy.
func translate(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	var verrs validation.Errors
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NewNotFound(notFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.NewConflict("already exists", err)
	case errors.As(err, &verrs):
		return apperror.NewValidation(verrs.Error(), err)
	default:
		return apperror.NewInternal("internal server error", err)
	}
}
