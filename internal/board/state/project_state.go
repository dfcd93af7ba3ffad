package state

import (
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
)

// ProjectState is the authoritative collection of projects. Construct one per
// application and hand it to whoever needs it.
//
// Mutations are serialized and their notifications are delivered before the
// next mutation starts, so listeners always see fully applied changes in
// order. Listeners may read the store but must not mutate it from inside the
// callback.
type ProjectState struct {
	Base[domain.Project]

	writeMu sync.Mutex

	mu       sync.RWMutex
	projects []domain.Project
	index    map[string]int
	lastID   uint64
}

// NewProjectState returns an empty store.
func NewProjectState() *ProjectState {
	return &ProjectState{
		index: make(map[string]int),
	}
}

// NextID returns the next project id: "1", "2", ...
func (s *ProjectState) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	return strconv.FormatUint(s.lastID, 10)
}

// AddProject appends p and notifies listeners.
func (s *ProjectState) AddProject(p domain.Project) error {
	if !p.Status.Valid() {
		return fmt.Errorf("add project %s: %w", p.ID, domain.ErrInvalidStatus)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if _, exists := s.index[p.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("add project %s: %w", p.ID, domain.ErrDuplicateProjectID)
	}
	s.index[p.ID] = len(s.projects)
	s.projects = append(s.projects, p)
	snapshot := slices.Clone(s.projects)
	s.mu.Unlock()

	s.notifyListeners(snapshot)
	return nil
}

// MoveProject sets the status of the project with the given id. It reports
// whether anything changed; unknown ids and moves to the current status are
// no-ops and do not notify.
func (s *ProjectState) MoveProject(id string, target domain.Status) (bool, error) {
	if !target.Valid() {
		return false, fmt.Errorf("move project %s: %w", id, domain.ErrInvalidStatus)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i, ok := s.index[id]
	if !ok || s.projects[i].Status == target {
		s.mu.Unlock()
		return false, nil
	}
	s.projects[i].Status = target
	snapshot := slices.Clone(s.projects)
	s.mu.Unlock()

	s.notifyListeners(snapshot)
	return true, nil
}

// Projects returns a copy of all projects in creation order.
func (s *ProjectState) Projects() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]domain.Project, 0, len(s.projects)), s.projects...)
}

// Project looks up a single project by id.
func (s *ProjectState) Project(id string) (domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return domain.Project{}, false
	}
	return s.projects[i], true
}

// Len returns the number of stored projects.
func (s *ProjectState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}
