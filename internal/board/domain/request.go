package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 24
	MaxDescriptionLength = 50
	MinPeople            = 1
	MaxPeople            = 6
)

// CreateProjectRequest carries the values read from the project form.
type CreateProjectRequest struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	People      int    `json:"people" yaml:"people"`
}

// Normalize trims surrounding whitespace from the text fields.
func (r *CreateProjectRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

// Validate checks the request against the form bounds. Call Normalize first.
func (r CreateProjectRequest) Validate() error {
	if err := validateText("title", r.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateText("description", r.Description, MaxDescriptionLength); err != nil {
		return err
	}
	if r.People < MinPeople || r.People > MaxPeople {
		return &ValidationError{
			Field:  "people",
			Reason: fmt.Sprintf("must be between %d and %d", MinPeople, MaxPeople),
		}
	}
	return nil
}

func validateText(field, value string, max int) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "required"}
	}
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be at most %d characters", max)}
	}
	return nil
}
