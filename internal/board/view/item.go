// Package view holds the board's in-process view subscribers: one list per
// status, each re-rendering its own subset of every snapshot.
package view

import (
	"fmt"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/GoSim-25-26J-441/project-board/internal/board/dragdrop"
)

// ProjectItem is one rendered card.
type ProjectItem struct {
	project domain.Project
}

func NewProjectItem(p domain.Project) ProjectItem {
	return ProjectItem{project: p}
}

func (i ProjectItem) Project() domain.Project {
	return i.project
}

// PeopleLabel renders the assignee count, e.g. "1 Person" or "3 People".
func (i ProjectItem) PeopleLabel() string {
	if i.project.People > 1 {
		return fmt.Sprintf("%d People", i.project.People)
	}
	return "1 Person"
}

// DragStart returns the payload the card carries while dragged.
func (i ProjectItem) DragStart() *dragdrop.DataTransfer {
	return dragdrop.StartDrag(i.project.ID)
}
