package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"course-library-backend/internal/domains/author/model"
	coursemodel "course-library-backend/internal/domains/course/model"
	courserepo "course-library-backend/internal/domains/course/repository"
	"course-library-backend/internal/infrastructure/database"
	"course-library-backend/pkg/cache"
	pkgdb "course-library-backend/pkg/database"
)

const (
	authorCacheKeyPrefix = "author:"
	defaultCacheTTL      = 15 * time.Minute
)

// postgresRepository - pgx pool plus an optional read-through cache.
type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, ttl time.Duration) (RepositoryInterface, error) {
	if pool == nil {
		return nil, model.ErrNilDependency
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &postgresRepository{pool: pool, cache: c, cacheTTL: ttl}, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error) {
	filter = normalize(filter)

	var qb strings.Builder
	qb.WriteString(`
		SELECT id, first_name, last_name, date_of_birth, main_category
		FROM authors
		WHERE 1=1`)

	args := []interface{}{}
	if filter.MainCategory != "" {
		args = append(args, filter.MainCategory)
		fmt.Fprintf(&qb, " AND LOWER(main_category) = LOWER($%d)", len(args))
	}
	if filter.SearchQuery != "" {
		args = append(args, likePattern(filter.SearchQuery))
		n := len(args)
		fmt.Fprintf(&qb, " AND (main_category ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)", n, n, n)
	}
	qb.WriteString(" ORDER BY first_name, last_name")

	rows, err := r.pool.Query(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.DateOfBirth, &a.MainCategory); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	key := authorCacheKeyPrefix + id.String()

	var a model.Author
	if r.cache != nil {
		if found, err := r.cache.Get(ctx, key, &a); err == nil && found {
			return &a, nil
		} else if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("author cache read failed")
		}
	}

	err := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, date_of_birth, main_category
		FROM authors
		WHERE id = $1
	`, id).Scan(&a.ID, &a.FirstName, &a.LastName, &a.DateOfBirth, &a.MainCategory)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, a, r.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("author cache write failed")
		}
	}

	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, author *model.Author, courses []coursemodel.Course) error {
	assignIDs(author, courses)

	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO authors (id, first_name, last_name, date_of_birth, main_category)
			VALUES ($1, $2, $3, $4, $5)
		`, author.ID, author.FirstName, author.LastName, author.DateOfBirth, author.MainCategory)
		if err != nil {
			if database.IsPgError(err, database.UniqueViolation) {
				return model.ErrAuthorConflict
			}
			return fmt.Errorf("failed to create author: %w", err)
		}

		if len(courses) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, c := range courses {
			batch.Queue(`
				INSERT INTO courses (id, author_id, title, description)
				VALUES ($1, $2, $3, $4)
			`, c.ID, c.AuthorID, c.Title, c.Description)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to create author courses: %w", err)
		}
		return nil
	})
}

// Delete removes the author and their courses in one transaction.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		courses, err := tx.Exec(ctx, `DELETE FROM courses WHERE author_id = $1`, id)
		if err != nil {
			return 0, fmt.Errorf("failed to delete author courses: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
		if err != nil {
			return 0, fmt.Errorf("failed to delete author: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return 0, model.ErrAuthorNotFound
		}
		return courses.RowsAffected(), nil
	})
	if err != nil {
		return err
	}

	log.Debug().Str("author_id", id.String()).Int64("courses", removed).Msg("author deleted")
	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, authorCacheKeyPrefix+id.String()); err != nil {
		log.Warn().Err(err).Str("author_id", id.String()).Msg("author cache invalidation failed")
	}
	if err := r.cache.DeletePattern(ctx, courserepo.AuthorCoursesPattern(id)); err != nil {
		log.Warn().Err(err).Str("author_id", id.String()).Msg("course cache invalidation failed")
	}
}

func assignIDs(author *model.Author, courses []coursemodel.Course) {
	if author.ID == uuid.Nil {
		author.ID = uuid.New()
	}
	for i := range courses {
		if courses[i].ID == uuid.Nil {
			courses[i].ID = uuid.New()
		}
		courses[i].AuthorID = author.ID
	}
}
