package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"course-library-backend/internal/domains/course/model"
	"course-library-backend/internal/infrastructure/database"
	"course-library-backend/pkg/cache"
	pkgdb "course-library-backend/pkg/database"
)

const defaultCacheTTL = 15 * time.Minute

// postgresStore reads through an optional cache (nil disables caching).
type postgresStore struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewPostgresStore(pool *pgxpool.Pool, c cache.Cache, ttl time.Duration) (Store, error) {
	if pool == nil {
		return nil, model.ErrNilDependency
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &postgresStore{pool: pool, cache: c, cacheTTL: ttl}, nil
}

func (s *postgresStore) Session() RepositoryInterface {
	return &postgresSession{store: s}
}

type pendingOp func(ctx context.Context, tx pgx.Tx) error

type postgresSession struct {
	store   *postgresStore
	pending []pendingOp
	touched []uuid.UUID
}

func (r *postgresSession) AuthorExists(ctx context.Context, authorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.store.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, authorID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author: %w", err)
	}
	return exists, nil
}

func (r *postgresSession) GetCourses(ctx context.Context, authorID uuid.UUID) ([]model.Course, error) {
	key := courseListKey(authorID)

	var courses []model.Course
	if r.cacheGet(ctx, key, &courses) {
		return courses, nil
	}

	rows, err := r.store.pool.Query(ctx, `
		SELECT id, author_id, title, description
		FROM courses
		WHERE author_id = $1
		ORDER BY title, id
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses = make([]model.Course, 0)
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.AuthorID, &c.Title, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}

	r.cacheSet(ctx, key, courses)
	return courses, nil
}

func (r *postgresSession) GetCourse(ctx context.Context, authorID, courseID uuid.UUID) (*model.Course, error) {
	key := courseKey(authorID, courseID)

	var c model.Course
	if r.cacheGet(ctx, key, &c) {
		return &c, nil
	}

	err := r.store.pool.QueryRow(ctx, `
		SELECT id, author_id, title, description
		FROM courses
		WHERE author_id = $1 AND id = $2
	`, authorID, courseID).Scan(&c.ID, &c.AuthorID, &c.Title, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	r.cacheSet(ctx, key, c)
	return &c, nil
}

func (r *postgresSession) AddCourse(authorID uuid.UUID, course *model.Course) error {
	if course == nil {
		return model.ErrNilCourse
	}
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	course.AuthorID = authorID

	c := *course
	r.stage(c.AuthorID, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO courses (id, author_id, title, description)
			VALUES ($1, $2, $3, $4)
		`, c.ID, c.AuthorID, c.Title, c.Description)
		switch {
		case err == nil:
			return nil
		case database.IsPgError(err, database.UniqueViolation):
			return model.ErrCourseConflict
		case database.IsPgError(err, database.ForeignKeyViolation):
			return model.ErrAuthorNotFound
		default:
			return fmt.Errorf("failed to insert course: %w", err)
		}
	})
	return nil
}

func (r *postgresSession) UpdateCourse(course *model.Course) error {
	if course == nil {
		return model.ErrNilCourse
	}

	c := *course
	r.stage(c.AuthorID, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE courses
			SET title = $1, description = $2, updated_at = NOW()
			WHERE id = $3 AND author_id = $4
		`, c.Title, c.Description, c.ID, c.AuthorID)
		if err != nil {
			return fmt.Errorf("failed to update course: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrCourseNotFound
		}
		return nil
	})
	return nil
}

func (r *postgresSession) DeleteCourse(course *model.Course) error {
	if course == nil {
		return model.ErrNilCourse
	}

	c := *course
	r.stage(c.AuthorID, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM courses WHERE id = $1 AND author_id = $2`, c.ID, c.AuthorID)
		if err != nil {
			return fmt.Errorf("failed to delete course: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrCourseNotFound
		}
		return nil
	})
	return nil
}

// Save runs every staged change in one transaction, then drops the cached
// entries of the authors involved. The session is empty afterwards.
func (r *postgresSession) Save(ctx context.Context) error {
	pending, touched := r.pending, r.touched
	r.pending, r.touched = nil, nil

	if len(pending) == 0 {
		return nil
	}

	err := pkgdb.WithTransaction(ctx, r.store.pool, func(tx pgx.Tx) error {
		for _, op := range pending {
			if err := op(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, authorID := range touched {
		r.invalidate(ctx, authorID)
	}
	return nil
}

func (r *postgresSession) stage(authorID uuid.UUID, op pendingOp) {
	r.pending = append(r.pending, op)
	for _, id := range r.touched {
		if id == authorID {
			return
		}
	}
	r.touched = append(r.touched, authorID)
}

// ==================== CACHE ====================

func (r *postgresSession) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if r.store.cache == nil {
		return false
	}
	found, err := r.store.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("course cache read failed")
		return false
	}
	return found
}

func (r *postgresSession) cacheSet(ctx context.Context, key string, value interface{}) {
	if r.store.cache == nil {
		return
	}
	if err := r.store.cache.Set(ctx, key, value, r.store.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("course cache write failed")
	}
}

func (r *postgresSession) invalidate(ctx context.Context, authorID uuid.UUID) {
	if r.store.cache == nil {
		return
	}
	if err := r.store.cache.DeletePattern(ctx, AuthorCoursesPattern(authorID)); err != nil {
		log.Warn().Err(err).Str("author_id", authorID.String()).Msg("course cache invalidation failed")
	}
}
