package service

import "sync/atomic"

// Metrics tracks board activity.
type Metrics struct {
	projectsCreated  atomic.Int64
	projectsMoved    atomic.Int64
	moveNoops        atomic.Int64
	rejectedRequests atomic.Int64
	notifications    atomic.Int64
	listenerFailures atomic.Int64
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	ProjectsCreated  int64 `json:"projects_created"`
	ProjectsMoved    int64 `json:"projects_moved"`
	MoveNoops        int64 `json:"move_noops"`
	RejectedRequests int64 `json:"rejected_requests"`
	Notifications    int64 `json:"notifications"`
	ListenerFailures int64 `json:"listener_failures"`
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		ProjectsCreated:  m.projectsCreated.Load(),
		ProjectsMoved:    m.projectsMoved.Load(),
		MoveNoops:        m.moveNoops.Load(),
		RejectedRequests: m.rejectedRequests.Load(),
		Notifications:    m.notifications.Load(),
		ListenerFailures: m.listenerFailures.Load(),
	}
}

// NoopRate returns the share of move requests that changed nothing, in percent.
func (s MetricsSnapshot) NoopRate() float64 {
	total := s.ProjectsMoved + s.MoveNoops
	if total == 0 {
		return 0
	}
	return float64(s.MoveNoops) / float64(total) * 100
}
