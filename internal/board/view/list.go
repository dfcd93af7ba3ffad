package view

import (
	"fmt"
	"strings"
	"sync"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/GoSim-25-26J-441/project-board/internal/board/dragdrop"
	"github.com/GoSim-25-26J-441/project-board/internal/board/state"
)

// Subscriber is the part of the store a view listens to.
type Subscriber interface {
	AddListener(fn state.Listener[domain.Project]) state.Subscription
}

// ProjectList renders the projects of one status and accepts drops for it.
type ProjectList struct {
	*dragdrop.Target

	status domain.Status
	sub    state.Subscription

	mu      sync.RWMutex
	items   []ProjectItem
	renders int
}

// NewProjectList subscribes a list for status to store. Drops are forwarded
// to mover.
func NewProjectList(status domain.Status, store Subscriber, mover dragdrop.Mover) *ProjectList {
	l := &ProjectList{
		Target: dragdrop.NewTarget(status, mover),
		status: status,
	}
	l.sub = store.AddListener(l.render)
	return l
}

// Title is the list heading, e.g. "ACTIVE PROJECTS".
func (l *ProjectList) Title() string {
	return strings.ToUpper(fmt.Sprintf("%s projects", l.status))
}

func (l *ProjectList) ElementID() string {
	return fmt.Sprintf("%s-projects", l.status)
}

func (l *ProjectList) ContainerID() string {
	return fmt.Sprintf("%s-project-list-container", l.status)
}

// Items returns the cards from the last render.
func (l *ProjectList) Items() []ProjectItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]ProjectItem(nil), l.items...)
}

// RenderCount is the number of snapshots rendered so far.
func (l *ProjectList) RenderCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.renders
}

// Close detaches the list from the store.
func (l *ProjectList) Close() {
	l.sub.Unsubscribe()
}

func (l *ProjectList) render(projects []domain.Project) {
	items := make([]ProjectItem, 0, len(projects))
	for _, p := range domain.FilterByStatus(projects, l.status) {
		items = append(items, NewProjectItem(p))
	}

	l.mu.Lock()
	l.items = items
	l.renders++
	l.mu.Unlock()
}
