package repository

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"course-library-backend/internal/domains/course/model"
	"course-library-backend/internal/infrastructure/memstore"
)

type memoryStore struct {
	db *memstore.Store
}

func NewMemoryStore(db *memstore.Store) (Store, error) {
	if db == nil {
		return nil, model.ErrNilDependency
	}
	return &memoryStore{db: db}, nil
}

func (s *memoryStore) Session() RepositoryInterface {
	return &memorySession{db: s.db}
}

type memoryOp func(t *memstore.Tables) error

type memorySession struct {
	db      *memstore.Store
	pending []memoryOp
}

func (r *memorySession) AuthorExists(ctx context.Context, authorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.View(func(t *memstore.Tables) error {
		_, exists = t.Authors[authorID]
		return nil
	})
	return exists, err
}

func (r *memorySession) GetCourses(ctx context.Context, authorID uuid.UUID) ([]model.Course, error) {
	courses := make([]model.Course, 0)
	err := r.db.View(func(t *memstore.Tables) error {
		for _, rec := range t.Courses {
			if rec.AuthorID == authorID {
				courses = append(courses, fromRecord(rec))
			}
		}
		return nil
	})

	sort.Slice(courses, func(i, j int) bool {
		if courses[i].Title != courses[j].Title {
			return courses[i].Title < courses[j].Title
		}
		return courses[i].ID.String() < courses[j].ID.String()
	})
	return courses, err
}

func (r *memorySession) GetCourse(ctx context.Context, authorID, courseID uuid.UUID) (*model.Course, error) {
	var course *model.Course
	err := r.db.View(func(t *memstore.Tables) error {
		rec, ok := t.Courses[courseID]
		if !ok || rec.AuthorID != authorID {
			return model.ErrCourseNotFound
		}
		c := fromRecord(rec)
		course = &c
		return nil
	})
	return course, err
}

func (r *memorySession) AddCourse(authorID uuid.UUID, course *model.Course) error {
	if course == nil {
		return model.ErrNilCourse
	}
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	course.AuthorID = authorID

	rec := toRecord(course)
	r.pending = append(r.pending, func(t *memstore.Tables) error {
		if _, ok := t.Authors[rec.AuthorID]; !ok {
			return model.ErrAuthorNotFound
		}
		if _, ok := t.Courses[rec.ID]; ok {
			return model.ErrCourseConflict
		}
		t.Courses[rec.ID] = rec
		return nil
	})
	return nil
}

func (r *memorySession) UpdateCourse(course *model.Course) error {
	if course == nil {
		return model.ErrNilCourse
	}

	rec := toRecord(course)
	r.pending = append(r.pending, func(t *memstore.Tables) error {
		existing, ok := t.Courses[rec.ID]
		if !ok || existing.AuthorID != rec.AuthorID {
			return model.ErrCourseNotFound
		}
		t.Courses[rec.ID] = rec
		return nil
	})
	return nil
}

func (r *memorySession) DeleteCourse(course *model.Course) error {
	if course == nil {
		return model.ErrNilCourse
	}

	rec := toRecord(course)
	r.pending = append(r.pending, func(t *memstore.Tables) error {
		existing, ok := t.Courses[rec.ID]
		if !ok || existing.AuthorID != rec.AuthorID {
			return model.ErrCourseNotFound
		}
		delete(t.Courses, rec.ID)
		return nil
	})
	return nil
}

// Save applies the staged changes in one store update; on the first failing
// change nothing is written.
func (r *memorySession) Save(ctx context.Context) error {
	pending := r.pending
	r.pending = nil

	if len(pending) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(t *memstore.Tables) error {
		for _, op := range pending {
			if err := op(t); err != nil {
				return err
			}
		}
		return nil
	})
}

func fromRecord(rec memstore.CourseRecord) model.Course {
	return model.Course{
		ID:          rec.ID,
		AuthorID:    rec.AuthorID,
		Title:       rec.Title,
		Description: rec.Description,
	}
}

func toRecord(c *model.Course) memstore.CourseRecord {
	return memstore.CourseRecord{
		ID:          c.ID,
		AuthorID:    c.AuthorID,
		Title:       c.Title,
		Description: c.Description,
	}
}
