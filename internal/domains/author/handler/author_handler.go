package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"course-library-backend/internal/domains/author/model"
	"course-library-backend/internal/domains/author/service"
	"course-library-backend/internal/shared/middleware"
	"course-library-backend/internal/shared/response"
	"course-library-backend/internal/shared/utils"
	"course-library-backend/internal/shared/validation"
)

const (
	AuthorIDParam = "authorId"
	AuthorsAllow  = "GET, OPTIONS, POST"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) (*AuthorHandler, error) {
	if svc == nil {
		return nil, model.ErrNilDependency
	}
	return &AuthorHandler{service: svc}, nil
}

func AuthorLocation(id uuid.UUID) string {
	return fmt.Sprintf("/api/authors/%s", id)
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /api/authors?mainCategory=&searchQuery=
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetAuthors(c *gin.Context) {
	filter := model.AuthorFilter{
		MainCategory: c.Query("mainCategory"),
		SearchQuery:  c.Query("searchQuery"),
	}

	authors, err := h.service.GetAuthors(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, authors)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/authors/:authorId
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, AuthorIDParam)
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	author, err := h.service.GetAuthor(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, author)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req model.AuthorForCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	author, err := h.service.CreateAuthor(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, utils.AbsoluteURL(c, AuthorLocation(author.ID)), author)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /api/authors/:authorId
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, AuthorIDParam)
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	if err := h.service.DeleteAuthor(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// OPTIONS /api/authors
func (h *AuthorHandler) GetAuthorsOptions(c *gin.Context) {
	response.Options(c, AuthorsAllow)
}

func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		response.ValidationProblem(c, vErr.Errors)
		return
	}

	switch model.ToHTTPStatus(err) {
	case http.StatusNotFound:
		response.NotFound(c)
	case http.StatusConflict:
		response.Conflict(c, err.Error())
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.Request.URL.Path).
			Msg("author request failed")
		_ = c.Error(err)
		response.InternalServerError(c, "An unexpected fault happened. Try again later.")
	}
}
