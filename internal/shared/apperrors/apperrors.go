package apperrors

import (
	"errors"
	"net/http"

	"drivelog/internal/drivelog/domain"
)

// CheckError maps domain errors to HTTP status codes.
func CheckError(err error) int {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrSessionInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCoordinates):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
