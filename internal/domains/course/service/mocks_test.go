package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"course-library-backend/internal/domains/course/model"
	"course-library-backend/internal/domains/course/repository"
)

// MockStore hands out the same MockRepository for every session.
type MockStore struct {
	Repo *MockRepository
}

func (s *MockStore) Session() repository.RepositoryInterface {
	return s.Repo
}

// MockRepository mocks repository.RepositoryInterface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) AuthorExists(ctx context.Context, authorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GetCourses(ctx context.Context, authorID uuid.UUID) ([]model.Course, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockRepository) GetCourse(ctx context.Context, authorID, courseID uuid.UUID) (*model.Course, error) {
	args := m.Called(ctx, authorID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

func (m *MockRepository) AddCourse(authorID uuid.UUID, course *model.Course) error {
	args := m.Called(authorID, course)
	return args.Error(0)
}

func (m *MockRepository) UpdateCourse(course *model.Course) error {
	args := m.Called(course)
	return args.Error(0)
}

func (m *MockRepository) DeleteCourse(course *model.Course) error {
	args := m.Called(course)
	return args.Error(0)
}

func (m *MockRepository) Save(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
