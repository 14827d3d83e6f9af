package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectExists   = errors.New("project already exists")
)

// ValidationError reports a required field that was left blank.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// RequireFields returns a ValidationError for the first blank value, in the
// order given. fields alternates name, value.
func RequireFields(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			return &ValidationError{Field: fields[i]}
		}
	}
	return nil
}

// Validate checks the fields a project cannot be published without.
func (d Draft) Validate() error {
	return RequireFields(
		"title", d.Title,
		"description", d.Description,
		"category", d.Category,
	)
}
