package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-library-backend/internal/domains/course/model"
	"course-library-backend/internal/infrastructure/memstore"
)

var (
	berryID   = uuid.MustParse("d28888e9-2ba9-473a-a40f-e38cb54f9b35")
	mutinyID  = uuid.MustParse("d8663e5e-7494-4f81-8739-6e0de1bea7ee")
	rutherfID = uuid.MustParse("2aadd2df-7caf-45ab-9355-7f6332985a87")
)

func newSeededStore(t *testing.T) Store {
	t.Helper()
	db := memstore.New()
	require.NoError(t, db.Seed())
	s, err := NewMemoryStore(db)
	require.NoError(t, err)
	return s
}

func TestNewMemoryStore_NilDependency(t *testing.T) {
	_, err := NewMemoryStore(nil)
	assert.ErrorIs(t, err, model.ErrNilDependency)
}

func TestMemory_Reads(t *testing.T) {
	ctx := context.Background()
	repo := newSeededStore(t).Session()

	exists, err := repo.AuthorExists(ctx, berryID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.AuthorExists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)

	courses, err := repo.GetCourses(ctx, berryID)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Commandeering a Ship Without Getting Caught", courses[0].Title)
	assert.Equal(t, "Overthrowing Mutiny", courses[1].Title)

	courses, err = repo.GetCourses(ctx, rutherfID)
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestMemory_GetCourseScopedToAuthor(t *testing.T) {
	ctx := context.Background()
	repo := newSeededStore(t).Session()

	c, err := repo.GetCourse(ctx, berryID, mutinyID)
	require.NoError(t, err)
	assert.Equal(t, "Overthrowing Mutiny", c.Title)

	_, err = repo.GetCourse(ctx, rutherfID, mutinyID)
	assert.ErrorIs(t, err, model.ErrCourseNotFound)
}

func TestMemory_NothingPersistsBeforeSave(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore(t)
	repo := store.Session()

	course := &model.Course{Title: "Knots"}
	require.NoError(t, repo.AddCourse(rutherfID, course))
	assert.NotEqual(t, uuid.Nil, course.ID)
	assert.Equal(t, rutherfID, course.AuthorID)

	_, err := store.Session().GetCourse(ctx, rutherfID, course.ID)
	assert.ErrorIs(t, err, model.ErrCourseNotFound)

	require.NoError(t, repo.Save(ctx))

	got, err := store.Session().GetCourse(ctx, rutherfID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Knots", got.Title)
}

func TestMemory_AddKeepsGivenID(t *testing.T) {
	ctx := context.Background()
	repo := newSeededStore(t).Session()
	id := uuid.New()

	require.NoError(t, repo.AddCourse(rutherfID, &model.Course{ID: id, Title: "Maps"}))
	require.NoError(t, repo.Save(ctx))

	got, err := repo.GetCourse(ctx, rutherfID, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
}

func TestMemory_SaveIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore(t)
	repo := store.Session()

	good := &model.Course{Title: "Good"}
	require.NoError(t, repo.AddCourse(rutherfID, good))
	require.NoError(t, repo.UpdateCourse(&model.Course{ID: uuid.New(), AuthorID: rutherfID, Title: "ghost"}))

	assert.ErrorIs(t, repo.Save(ctx), model.ErrCourseNotFound)

	courses, err := store.Session().GetCourses(ctx, rutherfID)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestMemory_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newSeededStore(t).Session()

	c, err := repo.GetCourse(ctx, berryID, mutinyID)
	require.NoError(t, err)

	c.Title = "Preventing Mutiny"
	require.NoError(t, repo.UpdateCourse(c))
	require.NoError(t, repo.Save(ctx))

	got, err := repo.GetCourse(ctx, berryID, mutinyID)
	require.NoError(t, err)
	assert.Equal(t, "Preventing Mutiny", got.Title)

	require.NoError(t, repo.DeleteCourse(got))
	require.NoError(t, repo.Save(ctx))

	_, err = repo.GetCourse(ctx, berryID, mutinyID)
	assert.ErrorIs(t, err, model.ErrCourseNotFound)
}

func TestMemory_AddConflictAndMissingAuthor(t *testing.T) {
	ctx := context.Background()
	repo := newSeededStore(t).Session()

	require.NoError(t, repo.AddCourse(berryID, &model.Course{ID: mutinyID, Title: "dup"}))
	assert.ErrorIs(t, repo.Save(ctx), model.ErrCourseConflict)

	require.NoError(t, repo.AddCourse(uuid.New(), &model.Course{Title: "orphan"}))
	assert.ErrorIs(t, repo.Save(ctx), model.ErrAuthorNotFound)
}

func TestMemory_NilCourse(t *testing.T) {
	repo := newSeededStore(t).Session()

	assert.ErrorIs(t, repo.AddCourse(berryID, nil), model.ErrNilCourse)
	assert.ErrorIs(t, repo.UpdateCourse(nil), model.ErrNilCourse)
	assert.ErrorIs(t, repo.DeleteCourse(nil), model.ErrNilCourse)
}

func TestMemory_SaveWithoutChanges(t *testing.T) {
	assert.NoError(t, newSeededStore(t).Session().Save(context.Background()))
}

func TestCacheKeys(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	c := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	assert.Equal(t, "courses:00000000-0000-0000-0000-000000000001:list", courseListKey(a))
	assert.Equal(t, "courses:00000000-0000-0000-0000-000000000001:00000000-0000-0000-0000-000000000002", courseKey(a, c))
	assert.Equal(t, "courses:00000000-0000-0000-0000-000000000001:*", AuthorCoursesPattern(a))
}
