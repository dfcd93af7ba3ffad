package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectRequest_Validate(t *testing.T) {
	tests := []struct {
		name  string
		req   CreateProjectRequest
		field string
	}{
		{name: "valid", req: CreateProjectRequest{Title: "Build API", Description: "REST service", People: 3}},
		{name: "empty title", req: CreateProjectRequest{Description: "d", People: 1}, field: "title"},
		{name: "long title", req: CreateProjectRequest{Title: strings.Repeat("t", 25), Description: "d", People: 1}, field: "title"},
		{name: "title at limit", req: CreateProjectRequest{Title: strings.Repeat("t", 24), Description: "d", People: 1}},
		{name: "empty description", req: CreateProjectRequest{Title: "t", People: 1}, field: "description"},
		{name: "long description", req: CreateProjectRequest{Title: "t", Description: strings.Repeat("d", 51), People: 1}, field: "description"},
		{name: "zero people", req: CreateProjectRequest{Title: "t", Description: "d"}, field: "people"},
		{name: "too many people", req: CreateProjectRequest{Title: "t", Description: "d", People: 7}, field: "people"},
		{name: "max people", req: CreateProjectRequest{Title: "t", Description: "d", People: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestCreateProjectRequest_NormalizeTrims(t *testing.T) {
	req := CreateProjectRequest{Title: "  Build API ", Description: "\tREST service\n", People: 2}
	req.Normalize()

	assert.Equal(t, "Build API", req.Title)
	assert.Equal(t, "REST service", req.Description)

	blank := CreateProjectRequest{Title: "   ", Description: "d", People: 1}
	blank.Normalize()
	assert.Error(t, blank.Validate())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("finished")
	require.NoError(t, err)
	assert.Equal(t, StatusFinished, s)

	_, err = ParseStatus("archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewProjectDefaultsToActive(t *testing.T) {
	p := NewProject("1", "Build API", "REST service", 3)
	assert.Equal(t, StatusActive, p.Status)
}

func TestFilterByStatusKeepsOrder(t *testing.T) {
	items := []Project{
		{ID: "1", Status: StatusActive},
		{ID: "2", Status: StatusFinished},
		{ID: "3", Status: StatusActive},
	}

	active := FilterByStatus(items, StatusActive)
	require.Len(t, active, 2)
	assert.Equal(t, "1", active[0].ID)
	assert.Equal(t, "3", active[1].ID)
	assert.Empty(t, FilterByStatus(nil, StatusFinished))
}
