package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"course-library-backend/internal/domains/author/model"
	"course-library-backend/internal/domains/author/repository"
	"course-library-backend/internal/shared/validation"
)

type authorService struct {
	repo repository.RepositoryInterface
	now  func() time.Time
}

func NewAuthorService(repo repository.RepositoryInterface) (ServiceInterface, error) {
	return NewAuthorServiceWithClock(repo, time.Now)
}

// NewAuthorServiceWithClock fixes the clock used for ages and date checks.
func NewAuthorServiceWithClock(repo repository.RepositoryInterface, now func() time.Time) (ServiceInterface, error) {
	if repo == nil || now == nil {
		return nil, model.ErrNilDependency
	}
	return &authorService{repo: repo, now: now}, nil
}

func (s *authorService) GetAuthors(ctx context.Context, filter model.AuthorFilter) ([]model.AuthorResponse, error) {
	authors, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return model.ToResponses(authors, s.now()), nil
}

func (s *authorService) GetAuthor(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := a.ToResponse(s.now())
	return &resp, nil
}

func (s *authorService) CreateAuthor(ctx context.Context, req model.AuthorForCreationRequest) (*model.AuthorResponse, error) {
	now := s.now()

	if err := validation.FromOzzo(req.Validate(now)); err != nil {
		return nil, err
	}

	author, courses := req.ToEntity()
	if err := s.repo.Create(ctx, author, courses); err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	log.Info().
		Str("author_id", author.ID.String()).
		Int("courses", len(courses)).
		Msg("author created")

	resp := author.ToResponse(now)
	return &resp, nil
}

func (s *authorService) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("author_id", id.String()).Msg("author deleted")
	return nil
}
