package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"
	"gopkg.in/go-playground/validator.v9"
	"gorm.io/gorm"

	"github.com/Skotchmaster/fanshop/internal/apperror"
	"github.com/Skotchmaster/fanshop/internal/logging"
)

const msgInternal = "internal server error"

// classify turns any handler error into a status and the client-facing
// AppError. The original error stays wrapped for logging only.
func classify(err error) (int, *apperror.AppError) {
	if ae, ok := apperror.As(err); ok {
		if ae.Kind == apperror.Internal {
			return ae.StatusCode(), apperror.NewInternal(msgInternal, err)
		}
		return ae.StatusCode(), ae
	}

	var (
		he     *echo.HTTPError
		fields validator.ValidationErrors
		verrs  validation.Errors
	)
	switch {
	case errors.As(err, &he):
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && he.Code < http.StatusInternalServerError {
			msg = s
		}
		return he.Code, apperror.New(kindOf(he.Code), msg, err)
	case errors.As(err, &fields):
		return http.StatusBadRequest, apperror.NewBadRequest(missingFields(fields), err)
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity, apperror.NewValidation(verrs.Error(), err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, apperror.NewNotFound("not found", err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, apperror.NewConflict("already exists", err)
	default:
		return http.StatusInternalServerError, apperror.NewInternal(msgInternal, err)
	}
}

func kindOf(status int) apperror.Kind {
	switch status {
	case http.StatusUnauthorized:
		return apperror.Unauthenticated
	case http.StatusForbidden:
		return apperror.Forbidden
	case http.StatusNotFound:
		return apperror.NotFound
	case http.StatusConflict:
		return apperror.Conflict
	case http.StatusUnprocessableEntity:
		return apperror.Validation
	}
	if status < http.StatusInternalServerError {
		return apperror.BadRequest
	}
	return apperror.Internal
}

func missingFields(fields validator.ValidationErrors) string {
	names := make([]string, 0, len(fields))
	for _, fe := range fields {
		names = append(names, fe.Field())
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(names, ", "))
}

// ErrorHandler is the terminal echo.HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, ae := classify(err)

	l := logging.FromContext(c.Request().Context())
	if status >= http.StatusInternalServerError {
		l.Error("request_error", "status", status, "error", err)
	} else {
		l.Debug("request_error", "status", status, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, ae.ToResponse())
	}
	if err != nil {
		l.Error("error_response_failed", "error", err)
	}
}
