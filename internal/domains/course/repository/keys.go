package repository

import (
	"fmt"

	"github.com/google/uuid"
)

func courseListKey(authorID uuid.UUID) string {
	return fmt.Sprintf("courses:%s:list", authorID)
}

func courseKey(authorID, courseID uuid.UUID) string {
	return fmt.Sprintf("courses:%s:%s", authorID, courseID)
}

// AuthorCoursesPattern matches every cached entry of one author's courses.
func AuthorCoursesPattern(authorID uuid.UUID) string {
	return fmt.Sprintf("courses:%s:*", authorID)
}
