package model

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	TitleMaxLength       = 100
	DescriptionMaxLength = 1500

	MsgTitleRequired          = "You should fill out a title."
	MsgTitleTooLong           = "The title shouldn't have more than 100 characters."
	MsgDescriptionRequired    = "You should fill out a description."
	MsgDescriptionTooLong     = "The description shouldn't have more than 1500 characters."
	MsgTitleSameAsDescription = "Title must be different from description."
)

// NonBlank matches any value holding at least one non-space character.
// Used with validation.Match, which skips empty values.
var NonBlank = regexp.MustCompile(`\S`)

// ==================== REQUEST DTOs ====================

// CourseForCreationRequest - POST body. Description is optional.
type CourseForCreationRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CourseForUpdateRequest - PUT body and the target document of a PATCH.
// Both fields are always serialized so that JSON Patch "replace" operations
// find them.
type CourseForUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r CourseForCreationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, titleRules(r.Description)...),
		validation.Field(&r.Description,
			validation.RuneLength(0, DescriptionMaxLength).Error(MsgDescriptionTooLong),
		),
	)
}

func (r CourseForUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, titleRules(r.Description)...),
		validation.Field(&r.Description,
			validation.Required.Error(MsgDescriptionRequired),
			validation.Match(NonBlank).Error(MsgDescriptionRequired),
			validation.RuneLength(0, DescriptionMaxLength).Error(MsgDescriptionTooLong),
		),
	)
}

func titleRules(description string) []validation.Rule {
	return []validation.Rule{
		validation.Required.Error(MsgTitleRequired),
		validation.Match(NonBlank).Error(MsgTitleRequired),
		validation.RuneLength(0, TitleMaxLength).Error(MsgTitleTooLong),
		validation.By(func(value interface{}) error {
			if s, _ := value.(string); s == description {
				return errors.New(MsgTitleSameAsDescription)
			}
			return nil
		}),
	}
}

// ==================== RESPONSE DTOs ====================

type CourseResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    uuid.UUID `json:"authorId"`
}

// UpsertResult tells the handler whether PUT/PATCH created the course
// (201 + body) or updated it (204).
type UpsertResult struct {
	Course  *CourseResponse
	Created bool
}
