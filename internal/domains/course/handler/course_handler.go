package handler

import (
	"errors"
	"fmt"
	"net/http"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"course-library-backend/internal/domains/course/model"
	"course-library-backend/internal/domains/course/service"
	"course-library-backend/internal/shared/middleware"
	"course-library-backend/internal/shared/response"
	"course-library-backend/internal/shared/utils"
	"course-library-backend/internal/shared/validation"
)

const (
	AuthorIDParam = "authorId"
	CourseIDParam = "courseId"

	CoursesAllow = "GET, OPTIONS, POST, PUT, PATCH, DELETE"
)

type CourseHandler struct {
	service service.ServiceInterface
}

func NewCourseHandler(s service.ServiceInterface) (*CourseHandler, error) {
	if s == nil {
		return nil, model.ErrNilDependency
	}
	return &CourseHandler{service: s}, nil
}

// CourseLocation is the path of the single-course route.
func CourseLocation(authorID, courseID uuid.UUID) string {
	return fmt.Sprintf("/api/authors/%s/courses/%s", authorID, courseID)
}

// GetCoursesForAuthor - GET /api/authors/:authorId/courses
func (h *CourseHandler) GetCoursesForAuthor(c *gin.Context) {
	authorID, ok := parseID(c, AuthorIDParam)
	if !ok {
		return
	}

	courses, err := h.service.ListForAuthor(c.Request.Context(), authorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, courses)
}

// GetCourseForAuthor - GET /api/authors/:authorId/courses/:courseId
func (h *CourseHandler) GetCourseForAuthor(c *gin.Context) {
	authorID, courseID, ok := parseIDs(c)
	if !ok {
		return
	}

	course, err := h.service.GetForAuthor(c.Request.Context(), authorID, courseID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, course)
}

// CreateCourseForAuthor - POST /api/authors/:authorId/courses
func (h *CourseHandler) CreateCourseForAuthor(c *gin.Context) {
	authorID, ok := parseID(c, AuthorIDParam)
	if !ok {
		return
	}

	var req model.CourseForCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	course, err := h.service.CreateForAuthor(c.Request.Context(), authorID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, utils.AbsoluteURL(c, CourseLocation(authorID, course.ID)), course)
}

// GetCoursesOptions - OPTIONS /api/authors/:authorId/courses
func (h *CourseHandler) GetCoursesOptions(c *gin.Context) {
	response.Options(c, CoursesAllow)
}

// UpdateCourseForAuthor - PUT /api/authors/:authorId/courses/:courseId
// 201 when the course was created at courseId, 204 when it was replaced.
func (h *CourseHandler) UpdateCourseForAuthor(c *gin.Context) {
	authorID, courseID, ok := parseIDs(c)
	if !ok {
		return
	}

	var req model.CourseForUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.UpsertForAuthor(c.Request.Context(), authorID, courseID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.writeUpsert(c, authorID, result)
}

// PartiallyUpdateCourseForAuthor - PATCH /api/authors/:authorId/courses/:courseId
// Body is a JSON Patch (RFC 6902) document.
func (h *CourseHandler) PartiallyUpdateCourseForAuthor(c *gin.Context) {
	authorID, courseID, ok := parseIDs(c)
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, "Unable to read request body")
		return
	}

	patch, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		response.BadRequest(c, "Invalid JSON Patch document: "+err.Error())
		return
	}
	if patch == nil {
		response.BadRequest(c, "A JSON Patch document is required")
		return
	}

	result, err := h.service.PatchForAuthor(c.Request.Context(), authorID, courseID, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.writeUpsert(c, authorID, result)
}

// DeleteCourseForAuthor - DELETE /api/authors/:authorId/courses/:courseId
func (h *CourseHandler) DeleteCourseForAuthor(c *gin.Context) {
	authorID, courseID, ok := parseIDs(c)
	if !ok {
		return
	}

	if err := h.service.DeleteForAuthor(c.Request.Context(), authorID, courseID); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// ==================== HELPERS ====================

func (h *CourseHandler) writeUpsert(c *gin.Context, authorID uuid.UUID, result *model.UpsertResult) {
	if result.Created {
		response.Created(c, utils.AbsoluteURL(c, CourseLocation(authorID, result.Course.ID)), result.Course)
		return
	}
	response.NoContent(c)
}

func (h *CourseHandler) handleError(c *gin.Context, err error) {
	var vErr *validation.Error

	switch {
	case errors.As(err, &vErr):
		response.ValidationProblem(c, vErr.Errors)
	case errors.Is(err, model.ErrPatchNotApplicable):
		response.ValidationProblem(c, validation.NewError("patch", err.Error()).Errors)
	case model.ToHTTPStatus(err) == http.StatusNotFound:
		response.NotFound(c)
	case model.ToHTTPStatus(err) == http.StatusConflict:
		response.ErrorResponse(c, http.StatusConflict, model.ToErrorCode(err), err.Error())
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.Request.URL.Path).
			Msg("course request failed")
		_ = c.Error(err)
		response.InternalServerError(c, "An unexpected fault happened. Try again later.")
	}
}

func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := utils.ParseUUIDParam(c, name)
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return uuid.Nil, false
	}
	return id, true
}

func parseIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	authorID, ok := parseID(c, AuthorIDParam)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	courseID, ok := parseID(c, CourseIDParam)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return authorID, courseID, true
}
