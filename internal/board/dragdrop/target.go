package dragdrop

import (
	"context"
	"sync"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
)

// Target is the drop zone of one status list.
type Target struct {
	status domain.Status
	mover  Mover

	mu        sync.Mutex
	droppable bool
}

// NewTarget returns a drop zone that moves dropped projects to status.
func NewTarget(status domain.Status, mover Mover) *Target {
	return &Target{status: status, mover: mover}
}

// Status is the status dropped projects are moved to.
func (t *Target) Status() domain.Status {
	return t.status
}

// DragOver marks the zone droppable when dt carries a project id.
func (t *Target) DragOver(dt *DataTransfer) bool {
	if !Accepts(dt) {
		return false
	}
	t.setDroppable(true)
	return true
}

// DragLeave clears the droppable highlight.
func (t *Target) DragLeave() {
	t.setDroppable(false)
}

// Droppable reports whether something acceptable is being dragged over.
func (t *Target) Droppable() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.droppable
}

// Drop moves the carried project into this list.
func (t *Target) Drop(ctx context.Context, dt *DataTransfer) (bool, error) {
	defer t.setDroppable(false)

	id := dt.GetData(MIMEText)
	if id == "" {
		return false, nil
	}
	return t.mover.MoveProject(ctx, id, t.status)
}

func (t *Target) setDroppable(v bool) {
	t.mu.Lock()
	t.droppable = v
	t.mu.Unlock()
}
