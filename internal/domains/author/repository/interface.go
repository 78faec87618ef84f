package repository

import (
	"context"

	"github.com/google/uuid"

	"course-library-backend/internal/domains/author/model"
	coursemodel "course-library-backend/internal/domains/course/model"
)

type RepositoryInterface interface {
	// GetAll returns the authors matching filter ordered by first then last name.
	GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	// Create inserts the author and its courses atomically, assigning ids
	// to every entity that has none.
	Create(ctx context.Context, author *model.Author, courses []coursemodel.Course) error
	// Delete removes the author and all of its courses.
	Delete(ctx context.Context, id uuid.UUID) error
}
