package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// Errors maps a field path ("title", "courses[0].title") to its messages.
type Errors map[string][]string

// Add appends a message for field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Error is returned by services when a request body fails validation.
type Error struct {
	Errors Errors
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, f := range e.Errors.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Errors[f], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NewError builds an Error holding a single field message.
func NewError(field, message string) *Error {
	errs := Errors{}
	errs.Add(field, message)
	return &Error{Errors: errs}
}

// FromOzzo converts the result of an ozzo Validate call.
//   - nil                 → nil
//   - ozzo.Errors         → *Error with flattened field paths
//   - ozzo.InternalError  → returned unchanged (not a client error)
func FromOzzo(err error) error {
	if err == nil {
		return nil
	}

	var internal ozzo.InternalError
	if errors.As(err, &internal) {
		return err
	}

	var fieldErrs ozzo.Errors
	if !errors.As(err, &fieldErrs) {
		return NewError("", err.Error())
	}

	out := Errors{}
	flatten(out, "", fieldErrs)
	return &Error{Errors: out}
}

func flatten(out Errors, prefix string, errs ozzo.Errors) {
	for field, err := range errs {
		if err == nil {
			continue
		}

		key := joinPath(prefix, field)

		var nested ozzo.Errors
		if errors.As(err, &nested) {
			flatten(out, key, nested)
			continue
		}
		out.Add(key, err.Error())
	}
}

// joinPath renders nested paths as courses[0].title.
func joinPath(prefix, field string) string {
	if prefix == "" {
		return field
	}
	if isIndex(field) {
		return fmt.Sprintf("%s[%s]", prefix, field)
	}
	return prefix + "." + field
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsValidationError reports whether err is (or wraps) a *Error.
func IsValidationError(err error) bool {
	var v *Error
	return errors.As(err, &v)
}
