package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/GoSim-25-26J-441/project-board/internal/board/eventloop"
	"github.com/GoSim-25-26J-441/project-board/internal/board/service"
	"github.com/GoSim-25-26J-441/project-board/internal/board/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
projects:
  - title: Build API
    description: REST service
    people: 3
  - title: Write docs
    description: Getting started guide
    people: 1
    status: finished
`

func TestParse(t *testing.T) {
	fixtures, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	assert.Equal(t, "Build API", fixtures[0].Title)
	assert.Equal(t, domain.StatusActive, fixtures[0].Status)
	assert.Equal(t, 1, fixtures[1].People)
	assert.Equal(t, domain.StatusFinished, fixtures[1].Status)
}

func TestParse_ReportsEveryInvalidEntry(t *testing.T) {
	data := `
projects:
  - title: ""
    description: d
    people: 1
  - title: ok
    description: d
    people: 9
  - title: ok
    description: d
    people: 2
    status: archived
`
	_, err := Parse([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project 1")
	assert.Contains(t, err.Error(), "project 2")
	assert.Contains(t, err.Error(), "project 3")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("projects: ["))
	assert.Error(t, err)
}

func TestLoadAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	fixtures, err := Load(path)
	require.NoError(t, err)

	loop := eventloop.New(4)
	loop.Start()
	defer loop.Stop()
	st := state.NewProjectState()
	svc := service.NewBoardService(st, loop)

	created, err := Apply(context.Background(), svc, fixtures)
	require.NoError(t, err)
	require.Len(t, created, 2)

	projects := st.Projects()
	require.Len(t, projects, 2)
	assert.Equal(t, "1", projects[0].ID)
	assert.Equal(t, domain.StatusActive, projects[0].Status)
	assert.Equal(t, "2", projects[1].ID)
	assert.Equal(t, domain.StatusFinished, projects[1].Status)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
