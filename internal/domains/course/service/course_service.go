package service

import (
	"context"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"course-library-backend/internal/domains/course/model"
	"course-library-backend/internal/domains/course/repository"
	"course-library-backend/internal/shared/validation"
)

type courseService struct {
	store repository.Store
}

func NewCourseService(store repository.Store) (ServiceInterface, error) {
	if store == nil {
		return nil, model.ErrNilDependency
	}
	return &courseService{store: store}, nil
}

func (s *courseService) ListForAuthor(ctx context.Context, authorID uuid.UUID) ([]model.CourseResponse, error) {
	repo := s.store.Session()

	if err := requireAuthor(ctx, repo, authorID); err != nil {
		return nil, err
	}

	courses, err := repo.GetCourses(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return model.ToResponses(courses), nil
}

func (s *courseService) GetForAuthor(ctx context.Context, authorID, courseID uuid.UUID) (*model.CourseResponse, error) {
	repo := s.store.Session()

	if err := requireAuthor(ctx, repo, authorID); err != nil {
		return nil, err
	}

	course, err := repo.GetCourse(ctx, authorID, courseID)
	if err != nil {
		return nil, err
	}

	resp := course.ToResponse()
	return &resp, nil
}

func (s *courseService) CreateForAuthor(ctx context.Context, authorID uuid.UUID, req model.CourseForCreationRequest) (*model.CourseResponse, error) {
	repo := s.store.Session()

	if err := requireAuthor(ctx, repo, authorID); err != nil {
		return nil, err
	}
	if err := validation.FromOzzo(req.Validate()); err != nil {
		return nil, err
	}

	course := req.ToEntity(authorID)
	if err := repo.AddCourse(authorID, course); err != nil {
		return nil, err
	}
	if err := repo.Save(ctx); err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}

	log.Info().
		Str("author_id", authorID.String()).
		Str("course_id", course.ID.String()).
		Msg("course created")

	resp := course.ToResponse()
	return &resp, nil
}

func (s *courseService) UpsertForAuthor(ctx context.Context, authorID, courseID uuid.UUID, req model.CourseForUpdateRequest) (*model.UpsertResult, error) {
	repo := s.store.Session()

	if err := requireAuthor(ctx, repo, authorID); err != nil {
		return nil, err
	}
	if err := validation.FromOzzo(req.Validate()); err != nil {
		return nil, err
	}

	existing, err := findCourse(ctx, repo, authorID, courseID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return s.createAt(ctx, repo, authorID, courseID, req)
	}

	req.ApplyToEntity(existing)
	return s.update(ctx, repo, existing)
}

func (s *courseService) PatchForAuthor(ctx context.Context, authorID, courseID uuid.UUID, patch jsonpatch.Patch) (*model.UpsertResult, error) {
	repo := s.store.Session()

	if err := requireAuthor(ctx, repo, authorID); err != nil {
		return nil, err
	}

	existing, err := findCourse(ctx, repo, authorID, courseID)
	if err != nil {
		return nil, err
	}

	var target model.CourseForUpdateRequest
	if existing != nil {
		target = model.UpdateRequestFromEntity(existing)
	}

	patched, err := target.ApplyPatch(patch)
	if err != nil {
		return nil, err
	}
	if err := validation.FromOzzo(patched.Validate()); err != nil {
		return nil, err
	}

	if existing == nil {
		return s.createAt(ctx, repo, authorID, courseID, patched)
	}

	patched.ApplyToEntity(existing)
	return s.update(ctx, repo, existing)
}

func (s *courseService) DeleteForAuthor(ctx context.Context, authorID, courseID uuid.UUID) error {
	repo := s.store.Session()

	if err := requireAuthor(ctx, repo, authorID); err != nil {
		return err
	}

	course, err := repo.GetCourse(ctx, authorID, courseID)
	if err != nil {
		return err
	}

	if err := repo.DeleteCourse(course); err != nil {
		return err
	}
	if err := repo.Save(ctx); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	log.Info().
		Str("author_id", authorID.String()).
		Str("course_id", courseID.String()).
		Msg("course deleted")
	return nil
}

// ==================== HELPERS ====================

func (s *courseService) createAt(ctx context.Context, repo repository.RepositoryInterface, authorID, courseID uuid.UUID, req model.CourseForUpdateRequest) (*model.UpsertResult, error) {
	course := req.ToEntity(authorID, courseID)
	if err := repo.AddCourse(authorID, course); err != nil {
		return nil, err
	}
	if err := repo.Save(ctx); err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}

	log.Info().
		Str("author_id", authorID.String()).
		Str("course_id", courseID.String()).
		Msg("course created by upsert")

	resp := course.ToResponse()
	return &model.UpsertResult{Course: &resp, Created: true}, nil
}

func (s *courseService) update(ctx context.Context, repo repository.RepositoryInterface, course *model.Course) (*model.UpsertResult, error) {
	if err := repo.UpdateCourse(course); err != nil {
		return nil, err
	}
	if err := repo.Save(ctx); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	resp := course.ToResponse()
	return &model.UpsertResult{Course: &resp, Created: false}, nil
}

func requireAuthor(ctx context.Context, repo repository.RepositoryInterface, authorID uuid.UUID) error {
	exists, err := repo.AuthorExists(ctx, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrAuthorNotFound
	}
	return nil
}

// findCourse returns (nil, nil) when the author has no such course.
func findCourse(ctx context.Context, repo repository.RepositoryInterface, authorID, courseID uuid.UUID) (*model.Course, error) {
	course, err := repo.GetCourse(ctx, authorID, courseID)
	if errors.Is(err, model.ErrCourseNotFound) {
		return nil, nil
	}
	return course, err
}
