package memstore

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuthorRecord is an author row.
type AuthorRecord struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	DateOfBirth  time.Time
	MainCategory string
}

// CourseRecord is a course row. AuthorID must reference an existing author.
type CourseRecord struct {
	ID          uuid.UUID
	AuthorID    uuid.UUID
	Title       string
	Description string
}

// Tables is one consistent snapshot of the store.
type Tables struct {
	Authors map[uuid.UUID]AuthorRecord
	Courses map[uuid.UUID]CourseRecord
}

func (t *Tables) clone() *Tables {
	out := &Tables{
		Authors: make(map[uuid.UUID]AuthorRecord, len(t.Authors)),
		Courses: make(map[uuid.UUID]CourseRecord, len(t.Courses)),
	}
	for k, v := range t.Authors {
		out.Authors[k] = v
	}
	for k, v := range t.Courses {
		out.Courses[k] = v
	}
	return out
}

// DeleteAuthor removes an author and every course they own.
func (t *Tables) DeleteAuthor(id uuid.UUID) {
	delete(t.Authors, id)
	for cid, c := range t.Courses {
		if c.AuthorID == id {
			delete(t.Courses, cid)
		}
	}
}

// Store is a process-local replacement for the PostgreSQL database.
// Readers share an RWMutex; writers apply changes to a copy and swap it in
// only when every change succeeded.
type Store struct {
	mu     sync.RWMutex
	tables *Tables
}

func New() *Store {
	return &Store{tables: &Tables{
		Authors: make(map[uuid.UUID]AuthorRecord),
		Courses: make(map[uuid.UUID]CourseRecord),
	}}
}

// View runs fn with read access. fn must not retain or modify t.
func (s *Store) View(fn func(t *Tables) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.tables)
}

// Update runs fn against a copy of the tables. The copy replaces the live
// tables only if fn returns nil.
func (s *Store) Update(fn func(t *Tables) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.tables.clone()
	if err := fn(next); err != nil {
		return err
	}
	s.tables = next
	return nil
}
