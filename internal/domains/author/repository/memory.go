package repository

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"course-library-backend/internal/domains/author/model"
	coursemodel "course-library-backend/internal/domains/course/model"
	"course-library-backend/internal/infrastructure/memstore"
)

type memoryRepository struct {
	db *memstore.Store
}

func NewMemoryRepository(db *memstore.Store) (RepositoryInterface, error) {
	if db == nil {
		return nil, model.ErrNilDependency
	}
	return &memoryRepository{db: db}, nil
}

func (r *memoryRepository) GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error) {
	filter = normalize(filter)

	authors := make([]model.Author, 0)
	err := r.db.View(func(t *memstore.Tables) error {
		for _, rec := range t.Authors {
			if a := fromRecord(rec); matches(a, filter) {
				authors = append(authors, a)
			}
		}
		return nil
	})

	sort.Slice(authors, func(i, j int) bool {
		if authors[i].FirstName != authors[j].FirstName {
			return authors[i].FirstName < authors[j].FirstName
		}
		return authors[i].LastName < authors[j].LastName
	})
	return authors, err
}

func (r *memoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	var author *model.Author
	err := r.db.View(func(t *memstore.Tables) error {
		rec, ok := t.Authors[id]
		if !ok {
			return model.ErrAuthorNotFound
		}
		a := fromRecord(rec)
		author = &a
		return nil
	})
	return author, err
}

func (r *memoryRepository) Create(ctx context.Context, author *model.Author, courses []coursemodel.Course) error {
	assignIDs(author, courses)

	return r.db.Update(func(t *memstore.Tables) error {
		if _, ok := t.Authors[author.ID]; ok {
			return model.ErrAuthorConflict
		}
		t.Authors[author.ID] = memstore.AuthorRecord{
			ID:           author.ID,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			DateOfBirth:  author.DateOfBirth,
			MainCategory: author.MainCategory,
		}

		for _, c := range courses {
			if _, ok := t.Courses[c.ID]; ok {
				return coursemodel.ErrCourseConflict
			}
			t.Courses[c.ID] = memstore.CourseRecord{
				ID:          c.ID,
				AuthorID:    c.AuthorID,
				Title:       c.Title,
				Description: c.Description,
			}
		}
		return nil
	})
}

func (r *memoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.Update(func(t *memstore.Tables) error {
		if _, ok := t.Authors[id]; !ok {
			return model.ErrAuthorNotFound
		}
		t.DeleteAuthor(id)
		return nil
	})
}

func fromRecord(rec memstore.AuthorRecord) model.Author {
	return model.Author{
		ID:           rec.ID,
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		DateOfBirth:  rec.DateOfBirth,
		MainCategory: rec.MainCategory,
	}
}
