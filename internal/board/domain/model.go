package domain

import "fmt"

// Status is the list a project is shown in.
type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusFinished
}

// ParseStatus converts a raw value (query param, JSON body) into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Project is a single card on the board. Only Status changes after creation.
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	People      int    `json:"people"`
	Status      Status `json:"status"`
}

// NewProject builds a project in the active list.
func NewProject(id, title, description string, people int) Project {
	return Project{
		ID:          id,
		Title:       title,
		Description: description,
		People:      people,
		Status:      StatusActive,
	}
}

// FilterByStatus returns the projects in items whose status is s, keeping order.
func FilterByStatus(items []Project, s Status) []Project {
	out := make([]Project, 0, len(items))
	for _, p := range items {
		if p.Status == s {
			out = append(out, p)
		}
	}
	return out
}
