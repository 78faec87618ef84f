package model

import (
	"github.com/google/uuid"
)

// Course belongs to exactly one author.
type Course struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    uuid.UUID `json:"author_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}
