package service

import (
	"context"

	"github.com/google/uuid"

	"course-library-backend/internal/domains/author/model"
)

type ServiceInterface interface {
	GetAuthors(ctx context.Context, filter model.AuthorFilter) ([]model.AuthorResponse, error)
	GetAuthor(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error)
	CreateAuthor(ctx context.Context, req model.AuthorForCreationRequest) (*model.AuthorResponse, error)
	DeleteAuthor(ctx context.Context, id uuid.UUID) error
}
