package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"course-library-backend/internal/shared/validation"
)

// Response is the envelope used for error bodies and service endpoints
// (health). Resource endpoints return the bare representation.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProblemDetails is an RFC 7807 body carrying per-field validation messages.
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail"`
	Instance string            `json:"instance"`
	Errors   validation.Errors `json:"errors"`
}

const (
	ProblemContentType = "application/problem+json"

	validationProblemType   = "https://courselibrary.com/modelvalidationproblem"
	validationProblemTitle  = "One or more model validation errors occurred."
	validationProblemDetail = "See the errors property for details."
)

// ==================== SUCCESS ====================

// Success wraps data in the envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// JSON writes body as is.
func JSON(c *gin.Context, statusCode int, body interface{}) {
	c.JSON(statusCode, body)
}

// Created answers 201 with a Location header and the created representation.
func Created(c *gin.Context, location string, body interface{}) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, body)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Options answers 200 with an Allow header and no body.
func Options(c *gin.Context, allow string) {
	c.Header("Allow", allow)
	c.Status(http.StatusOK)
}

// ==================== ERRORS ====================

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message)
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// NotFound answers 404 with an empty body.
func NotFound(c *gin.Context) {
	c.AbortWithStatus(http.StatusNotFound)
}

// ValidationProblem answers 422 with a problem document listing every
// failing field.
func ValidationProblem(c *gin.Context, errs validation.Errors) {
	if errs == nil {
		errs = validation.Errors{}
	}

	c.Header("Content-Type", ProblemContentType)
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ProblemDetails{
		Type:     validationProblemType,
		Title:    validationProblemTitle,
		Status:   http.StatusUnprocessableEntity,
		Detail:   validationProblemDetail,
		Instance: c.Request.URL.Path,
		Errors:   errs,
	})
}
