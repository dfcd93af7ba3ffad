package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateProjectID = errors.New("project id already exists")
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidStatus      = errors.New("invalid project status")
)

// ValidationError reports a creation request field that failed its bounds.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
