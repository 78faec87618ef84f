package model

import (
	"errors"
	"net/http"

	"course-library-backend/internal/shared/validation"
)

var (
	ErrAuthorNotFound     = errors.New("author not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseConflict     = errors.New("course with this id already exists")
	ErrNilCourse          = errors.New("course must not be nil")
	ErrNilDependency      = errors.New("required dependency is nil")
	ErrPatchNotApplicable = errors.New("patch document cannot be applied")
)

// ToHTTPStatus maps a service error to the status the handler answers with.
func ToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrAuthorNotFound), errors.Is(err, ErrCourseNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPatchNotApplicable), validation.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrCourseConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ToErrorCode gives the envelope code for non-404/422 errors.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrCourseConflict):
		return "COURSE_CONFLICT"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
