// Package dragdrop turns the drag start / drag over / drop signal sequence
// into status changes on the board.
package dragdrop

import (
	"context"
	"slices"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
)

const (
	// MIMEText is the only payload type a list accepts.
	MIMEText = "text/plain"

	EffectMove = "move"
)

// DataTransfer is the payload carried from the dragged item to the list it
// is dropped on.
type DataTransfer struct {
	Types         []string `json:"types"`
	EffectAllowed string   `json:"effect_allowed,omitempty"`
	data          map[string]string
}

// SetData stores value under format.
func (d *DataTransfer) SetData(format, value string) {
	if d.data == nil {
		d.data = make(map[string]string)
	}
	if !slices.Contains(d.Types, format) {
		d.Types = append(d.Types, format)
	}
	d.data[format] = value
}

// GetData returns the value stored under format, or "".
func (d *DataTransfer) GetData(format string) string {
	if d == nil {
		return ""
	}
	return d.data[format]
}

// StartDrag builds the payload a project item hands over on drag start.
func StartDrag(projectID string) *DataTransfer {
	dt := &DataTransfer{EffectAllowed: EffectMove}
	dt.SetData(MIMEText, projectID)
	return dt
}

// Accepts reports whether a list will take a drop carrying dt.
func Accepts(dt *DataTransfer) bool {
	return dt != nil && len(dt.Types) > 0 && dt.Types[0] == MIMEText
}

// Mover changes a project's status. It must treat unknown ids and moves to
// the current status as no-ops.
type Mover interface {
	MoveProject(ctx context.Context, id string, status domain.Status) (bool, error)
}
