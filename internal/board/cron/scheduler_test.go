package cronjob

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls  atomic.Int32
	maxAge atomic.Int64
}

func (s *countingSweeper) Sweep(maxAge time.Duration) int {
	s.calls.Add(1)
	s.maxAge.Store(int64(maxAge))
	return 1
}

func TestScheduler_RunSweep(t *testing.T) {
	sw := &countingSweeper{}
	s := NewScheduler(sw, "@every 1m", 2*time.Minute)

	s.RunSweep()

	assert.Equal(t, int32(1), sw.calls.Load())
	assert.Equal(t, int64(2*time.Minute), sw.maxAge.Load())
}

func TestScheduler_StartsEverySchedule(t *testing.T) {
	sw := &countingSweeper{}
	s := NewScheduler(sw, "@every 1s", time.Minute)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return sw.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := NewScheduler(&countingSweeper{}, "not a schedule", time.Minute)
	assert.Error(t, s.Start())
}

func TestScheduler_AddSweep(t *testing.T) {
	drags := &countingSweeper{}
	clients := &countingSweeper{}
	s := NewScheduler(drags, "@every 1m", 2*time.Minute)
	s.AddSweep("rate_limit_clients", "@every 1m", clients, 3*time.Minute)

	s.RunSweep()

	assert.Equal(t, int32(1), drags.calls.Load())
	assert.Equal(t, int32(1), clients.calls.Load())
	assert.Equal(t, int64(3*time.Minute), clients.maxAge.Load())
}

func TestScheduler_InvalidExtraSchedule(t *testing.T) {
	s := NewScheduler(&countingSweeper{}, "@every 1m", time.Minute)
	s.AddSweep("broken", "bogus", &countingSweeper{}, time.Minute)
	assert.Error(t, s.Start())
}
