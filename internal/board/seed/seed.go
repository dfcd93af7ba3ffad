// Package seed loads demo boards from YAML fixtures.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"gopkg.in/yaml.v3"
)

// Fixture is one project entry in a seed file.
type Fixture struct {
	domain.CreateProjectRequest `yaml:",inline"`
	Status                      domain.Status `yaml:"status"`
}

type file struct {
	Projects []Fixture `yaml:"projects"`
}

// Board is the part of the board service seeding needs.
type Board interface {
	CreateProject(ctx context.Context, req domain.CreateProjectRequest) (domain.Project, error)
	MoveProject(ctx context.Context, id string, status domain.Status) (bool, error)
}

// Load reads and validates a seed file.
func Load(path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes fixtures and validates every entry. All invalid entries are
// reported together.
func Parse(data []byte) ([]Fixture, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	var errs []error
	for i := range f.Projects {
		fx := &f.Projects[i]
		fx.Normalize()
		if fx.Status == "" {
			fx.Status = domain.StatusActive
		}
		if err := fx.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("project %d: %w", i+1, err))
			continue
		}
		if !fx.Status.Valid() {
			errs = append(errs, fmt.Errorf("project %d: %w: %q", i+1, domain.ErrInvalidStatus, fx.Status))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return f.Projects, nil
}

// Apply creates the fixtures in order and moves the finished ones.
func Apply(ctx context.Context, board Board, fixtures []Fixture) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(fixtures))
	for _, fx := range fixtures {
		p, err := board.CreateProject(ctx, fx.CreateProjectRequest)
		if err != nil {
			return out, err
		}
		if fx.Status != domain.StatusActive {
			if _, err := board.MoveProject(ctx, p.ID, fx.Status); err != nil {
				return out, err
			}
			p.Status = fx.Status
		}
		out = append(out, p)
	}
	return out, nil
}
