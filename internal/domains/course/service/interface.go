package service

import (
	"context"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"

	"course-library-backend/internal/domains/course/model"
)

// ServiceInterface - course operations scoped to an author.
// Every method answers model.ErrAuthorNotFound for an unknown author before
// looking at the request body.
type ServiceInterface interface {
	ListForAuthor(ctx context.Context, authorID uuid.UUID) ([]model.CourseResponse, error)
	GetForAuthor(ctx context.Context, authorID, courseID uuid.UUID) (*model.CourseResponse, error)
	CreateForAuthor(ctx context.Context, authorID uuid.UUID, req model.CourseForCreationRequest) (*model.CourseResponse, error)
	// UpsertForAuthor replaces the course, creating it at courseID when missing.
	UpsertForAuthor(ctx context.Context, authorID, courseID uuid.UUID, req model.CourseForUpdateRequest) (*model.UpsertResult, error)
	// PatchForAuthor applies patch and re-validates the result, creating the
	// course at courseID when missing.
	PatchForAuthor(ctx context.Context, authorID, courseID uuid.UUID, patch jsonpatch.Patch) (*model.UpsertResult, error)
	DeleteForAuthor(ctx context.Context, authorID, courseID uuid.UUID) error
}
