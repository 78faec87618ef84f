package model

import (
	"errors"
	"net/http"

	"course-library-backend/internal/shared/validation"
)

var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrAuthorConflict = errors.New("author with this id already exists")
	ErrNilDependency  = errors.New("required dependency is nil")
)

func ToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuthorConflict):
		return http.StatusConflict
	case validation.IsValidationError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
