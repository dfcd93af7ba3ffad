package eventloop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_RunsTasksSequentially(t *testing.T) {
	l := New(8)
	l.Start()
	defer l.Stop()

	var (
		mu      sync.Mutex
		running int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.Submit(context.Background(), func() {
				mu.Lock()
				running++
				if running > maxSeen {
					maxSeen = running
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				running--
				mu.Unlock()
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestLoop_SubmitWaitsForCompletion(t *testing.T) {
	l := New(1)
	l.Start()
	defer l.Stop()

	done := false
	require.NoError(t, l.Submit(context.Background(), func() { done = true }))
	assert.True(t, done)
}

func TestLoop_PanickingTaskKeepsLoopAlive(t *testing.T) {
	l := New(1)
	l.Start()
	defer l.Stop()

	err := l.Submit(context.Background(), func() { panic("handler bug") })
	assert.ErrorIs(t, err, ErrTaskPanicked)

	ran := false
	require.NoError(t, l.Submit(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestLoop_SubmitAfterStop(t *testing.T) {
	l := New(1)
	l.Start()
	l.Stop()
	l.Stop()

	err := l.Submit(context.Background(), func() {})
	assert.ErrorIs(t, err, ErrLoopStopped)
}

func TestLoop_StopWithoutStart(t *testing.T) {
	l := New(1)
	assert.NotPanics(t, l.Stop)
}

func TestLoop_SubmitHonoursContextWhileQueueFull(t *testing.T) {
	l := New(1)
	l.Start()
	defer l.Stop()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = l.Submit(context.Background(), func() {
			close(started)
			<-release
		})
	}()
	<-started

	// Fill the single queue slot.
	go func() { _ = l.Submit(context.Background(), func() {}) }()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := l.Submit(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}
