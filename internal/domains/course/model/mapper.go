package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
)

func (c *Course) ToResponse() CourseResponse {
	return CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		AuthorID:    c.AuthorID,
	}
}

func ToResponses(courses []Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, courses[i].ToResponse())
	}
	return out
}

// ToEntity builds a new course. The id is left nil; the repository assigns it.
func (r CourseForCreationRequest) ToEntity(authorID uuid.UUID) *Course {
	return &Course{
		AuthorID:    authorID,
		Title:       r.Title,
		Description: r.Description,
	}
}

// ToEntity builds the course created by an upsert at a client-chosen id.
func (r CourseForUpdateRequest) ToEntity(authorID, courseID uuid.UUID) *Course {
	return &Course{
		ID:          courseID,
		AuthorID:    authorID,
		Title:       r.Title,
		Description: r.Description,
	}
}

// ApplyToEntity overwrites the mutable fields; ID and AuthorID are kept.
func (r CourseForUpdateRequest) ApplyToEntity(c *Course) {
	c.Title = r.Title
	c.Description = r.Description
}

func UpdateRequestFromEntity(c *Course) CourseForUpdateRequest {
	return CourseForUpdateRequest{
		Title:       c.Title,
		Description: c.Description,
	}
}

// ApplyPatch runs patch against the JSON form of r and decodes the result.
// Failures wrap ErrPatchNotApplicable: bad operations, paths that do not
// exist, unknown properties and values of the wrong type.
func (r CourseForUpdateRequest) ApplyPatch(patch jsonpatch.Patch) (CourseForUpdateRequest, error) {
	doc, err := json.Marshal(r)
	if err != nil {
		return r, fmt.Errorf("encode course: %w", err)
	}

	patched, err := patch.Apply(doc)
	if err != nil {
		return r, fmt.Errorf("%w: %v", ErrPatchNotApplicable, err)
	}

	var out CourseForUpdateRequest
	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return r, fmt.Errorf("%w: %v", ErrPatchNotApplicable, err)
	}

	return out, nil
}
