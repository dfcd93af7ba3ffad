package dragdrop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound   = errors.New("drag session not found")
	ErrInvalidTransition = errors.New("invalid drag session transition")
	ErrDropNotAccepted   = errors.New("drop not accepted by target")
)

// Phase is where a drag session is in the start/over/drop sequence.
type Phase string

const (
	PhaseDragging Phase = "dragging"
	PhaseOver     Phase = "over"
	PhaseDropping Phase = "dropping"
	PhaseDropped  Phase = "dropped"
)

// Session tracks one drag gesture from start to end.
type Session struct {
	ID        string        `json:"id"`
	ProjectID string        `json:"project_id"`
	Phase     Phase         `json:"phase"`
	Target    domain.Status `json:"target,omitempty"`
	Moved     bool          `json:"moved"`
	StartedAt time.Time     `json:"started_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	transfer *DataTransfer
}

// Board is what the coordinator needs from the project store.
type Board interface {
	Mover
	GetProject(ctx context.Context, id string) (domain.Project, error)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTargets routes sessions through the drop zones of the given lists, so
// their droppable flag follows the sessions hovering over them.
func WithTargets(targets ...*Target) Option {
	return func(c *Coordinator) {
		for _, t := range targets {
			c.targets[t.Status()] = t
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// Coordinator keeps the drag sessions started by clients and applies drops
// to the board.
type Coordinator struct {
	board   Board
	now     func() time.Time
	targets map[domain.Status]*Target

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewCoordinator returns a coordinator backed by board.
func NewCoordinator(board Board, opts ...Option) *Coordinator {
	c := &Coordinator{
		board:    board,
		now:      time.Now,
		targets:  make(map[domain.Status]*Target),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start opens a session for dragging projectID.
func (c *Coordinator) Start(ctx context.Context, projectID string) (Session, error) {
	if _, err := c.board.GetProject(ctx, projectID); err != nil {
		return Session{}, err
	}

	now := c.now()
	s := &Session{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Phase:     PhaseDragging,
		StartedAt: now,
		UpdatedAt: now,
		transfer:  StartDrag(projectID),
	}

	c.mu.Lock()
	c.sessions[s.ID] = s
	c.mu.Unlock()

	return *s, nil
}

// Over records that the drag entered the list for status.
func (c *Coordinator) Over(id string, status domain.Status) (Session, error) {
	if !status.Valid() {
		return Session{}, domain.ErrInvalidStatus
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.lookup(id)
	if err != nil {
		return Session{}, err
	}
	if s.Phase == PhaseDropped || s.Phase == PhaseDropping {
		return *s, fmt.Errorf("%w: over after drop", ErrInvalidTransition)
	}
	if !Accepts(s.transfer) {
		return *s, ErrDropNotAccepted
	}

	prev := s.Target
	s.Phase = PhaseOver
	s.Target = status
	s.UpdatedAt = c.now()
	c.refreshTarget(prev)
	c.refreshTarget(status)
	return *s, nil
}

// Leave records that the drag left the list it was over.
func (c *Coordinator) Leave(id string) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.lookup(id)
	if err != nil {
		return Session{}, err
	}
	if s.Phase == PhaseDropped || s.Phase == PhaseDropping {
		return *s, fmt.Errorf("%w: leave after drop", ErrInvalidTransition)
	}

	prev := s.Target
	s.Phase = PhaseDragging
	s.Target = ""
	s.UpdatedAt = c.now()
	c.refreshTarget(prev)
	return *s, nil
}

// Drop applies the move. The session must currently be over the list for
// status. The board is called without holding the session lock, so other
// sessions stay usable while the move and its notifications run.
func (c *Coordinator) Drop(ctx context.Context, id string, status domain.Status) (Session, error) {
	c.mu.Lock()
	s, err := c.lookup(id)
	if err != nil {
		c.mu.Unlock()
		return Session{}, err
	}
	if err := dropAllowed(s, status); err != nil {
		out := *s
		c.mu.Unlock()
		return out, err
	}
	s.Phase = PhaseDropping
	dt := s.transfer
	target := c.targets[status]
	c.mu.Unlock()

	var moved bool
	if target != nil {
		moved, err = target.Drop(ctx, dt)
	} else {
		moved, err = c.board.MoveProject(ctx, dt.GetData(MIMEText), status)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// End and Sweep leave dropping sessions alone, so s is still registered.
	s.UpdatedAt = c.now()
	if err != nil {
		s.Phase = PhaseOver
		c.refreshTarget(status)
		return *s, fmt.Errorf("drop session %s: %w", id, err)
	}

	s.Phase = PhaseDropped
	s.Moved = moved
	c.refreshTarget(status)
	return *s, nil
}

// End closes the session. Ending before a drop abandons the drag without
// touching the board.
func (c *Coordinator) End(id string) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.lookup(id)
	if err != nil {
		return Session{}, err
	}
	if s.Phase == PhaseDropping {
		return *s, fmt.Errorf("%w: drop in progress", ErrInvalidTransition)
	}
	delete(c.sessions, id)
	c.refreshTarget(s.Target)

	if s.Phase != PhaseDropped {
		log.Printf("[info] operation=drag_end session=%s project=%s abandoned=true", s.ID, s.ProjectID)
	}
	return *s, nil
}

// Get returns the current state of a session.
func (c *Coordinator) Get(id string) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.lookup(id)
	if err != nil {
		return Session{}, err
	}
	return *s, nil
}

// Active returns the number of open sessions.
func (c *Coordinator) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

// Sweep drops sessions that have not changed for maxAge, which covers clients
// that never sent drag end.
func (c *Coordinator) Sweep(maxAge time.Duration) int {
	cutoff := c.now().Add(-maxAge)

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, s := range c.sessions {
		if s.Phase != PhaseDropping && s.UpdatedAt.Before(cutoff) {
			delete(c.sessions, id)
			c.refreshTarget(s.Target)
			removed++
		}
	}
	return removed
}

func dropAllowed(s *Session, status domain.Status) error {
	switch {
	case s.Phase == PhaseDropped:
		return fmt.Errorf("%w: already dropped", ErrInvalidTransition)
	case s.Phase == PhaseDropping:
		return fmt.Errorf("%w: drop in progress", ErrInvalidTransition)
	case s.Phase != PhaseOver || s.Target != status:
		return ErrDropNotAccepted
	}
	return nil
}

// refreshTarget sets the droppable flag of the list for status from the
// sessions currently over it. Callers hold c.mu.
func (c *Coordinator) refreshTarget(status domain.Status) {
	t, ok := c.targets[status]
	if !ok {
		return
	}
	for _, s := range c.sessions {
		if s.Target == status && (s.Phase == PhaseOver || s.Phase == PhaseDropping) {
			t.DragOver(s.transfer)
			return
		}
	}
	t.DragLeave()
}

func (c *Coordinator) lookup(id string) (*Session, error) {
	s, ok := c.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}
