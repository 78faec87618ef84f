package repository

import (
	"context"

	"github.com/google/uuid"

	"course-library-backend/internal/domains/course/model"
)

// Store hands out one session per request.
type Store interface {
	Session() RepositoryInterface
}

// RepositoryInterface - course data access for a single request.
//
// Reads hit storage immediately. AddCourse, UpdateCourse and DeleteCourse
// only stage a change (a copy of the course taken at call time); nothing is
// written until Save, which applies every staged change atomically.
type RepositoryInterface interface {
	AuthorExists(ctx context.Context, authorID uuid.UUID) (bool, error)
	// GetCourses returns the author's courses ordered by title.
	GetCourses(ctx context.Context, authorID uuid.UUID) ([]model.Course, error)
	// GetCourse returns model.ErrCourseNotFound when the course does not
	// exist or belongs to another author.
	GetCourse(ctx context.Context, authorID, courseID uuid.UUID) (*model.Course, error)

	// AddCourse sets course.AuthorID and assigns a new id when course.ID is nil.
	AddCourse(authorID uuid.UUID, course *model.Course) error
	UpdateCourse(course *model.Course) error
	DeleteCourse(course *model.Course) error

	Save(ctx context.Context) error
}
