package model

import (
	"time"

	"github.com/google/uuid"
)

type Author struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	MainCategory string    `json:"main_category"`
}

// Name is "FirstName LastName".
func (a *Author) Name() string {
	return a.FirstName + " " + a.LastName
}

// Age in whole years at now; the birthday itself counts.
func (a *Author) Age(now time.Time) int {
	dob := a.DateOfBirth.UTC()
	now = now.UTC()

	age := now.Year() - dob.Year()
	if now.Before(dob.AddDate(age, 0, 0)) {
		age--
	}
	return age
}

// AuthorFilter - query parameters of GET /api/authors. Empty fields are ignored.
type AuthorFilter struct {
	MainCategory string
	SearchQuery  string
}
