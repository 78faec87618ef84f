package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	coursemodel "course-library-backend/internal/domains/course/model"
)

const NameMaxLength = 50

// AuthorForCreationRequest - POST /api/authors. Courses are created together
// with the author.
type AuthorForCreationRequest struct {
	FirstName    string                                 `json:"firstName"`
	LastName     string                                 `json:"lastName"`
	DateOfBirth  time.Time                              `json:"dateOfBirth"`
	MainCategory string                                 `json:"mainCategory"`
	Courses      []coursemodel.CourseForCreationRequest `json:"courses"`
}

// Validate checks the author fields and every nested course. now bounds the
// date of birth.
func (r AuthorForCreationRequest) Validate(now time.Time) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("You should fill out a first name."),
			validation.Match(coursemodel.NonBlank).Error("You should fill out a first name."),
			validation.RuneLength(0, NameMaxLength).Error("The first name shouldn't have more than 50 characters."),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("You should fill out a last name."),
			validation.Match(coursemodel.NonBlank).Error("You should fill out a last name."),
			validation.RuneLength(0, NameMaxLength).Error("The last name shouldn't have more than 50 characters."),
		),
		validation.Field(&r.DateOfBirth,
			validation.Required.Error("You should fill out a date of birth."),
			validation.By(func(value interface{}) error {
				if dob, _ := value.(time.Time); dob.After(now) {
					return errors.New("The date of birth can't be in the future.")
				}
				return nil
			}),
		),
		validation.Field(&r.MainCategory,
			validation.Required.Error("You should fill out a main category."),
			validation.Match(coursemodel.NonBlank).Error("You should fill out a main category."),
			validation.RuneLength(0, NameMaxLength).Error("The main category shouldn't have more than 50 characters."),
		),
		validation.Field(&r.Courses),
	)
}

// ToEntity maps the author and its courses. Ids are assigned by the repository.
func (r AuthorForCreationRequest) ToEntity() (*Author, []coursemodel.Course) {
	author := &Author{
		FirstName:    strings.TrimSpace(r.FirstName),
		LastName:     strings.TrimSpace(r.LastName),
		DateOfBirth:  r.DateOfBirth.UTC(),
		MainCategory: strings.TrimSpace(r.MainCategory),
	}

	courses := make([]coursemodel.Course, 0, len(r.Courses))
	for _, c := range r.Courses {
		courses = append(courses, *c.ToEntity(uuid.Nil))
	}
	return author, courses
}

type AuthorResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	MainCategory string    `json:"mainCategory"`
}

func (a *Author) ToResponse(now time.Time) AuthorResponse {
	return AuthorResponse{
		ID:           a.ID,
		Name:         a.Name(),
		Age:          a.Age(now),
		MainCategory: a.MainCategory,
	}
}

func ToResponses(authors []Author, now time.Time) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, authors[i].ToResponse(now))
	}
	return out
}
