// Package eventloop runs board handlers one at a time on a single worker,
// the way a browser event loop runs DOM handlers.
package eventloop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

var (
	ErrLoopStopped  = errors.New("event loop stopped")
	ErrTaskPanicked = errors.New("event loop task panicked")
)

type task struct {
	fn   func()
	done chan error
}

// Loop executes submitted tasks sequentially.
type Loop struct {
	tasks chan task

	mu      sync.RWMutex
	stopped bool

	startOnce sync.Once
	stopOnce  sync.Once
	finished  chan struct{}
}

// New creates a loop whose queue holds up to queueSize pending tasks.
func New(queueSize int) *Loop {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Loop{
		tasks:    make(chan task, queueSize),
		finished: make(chan struct{}),
	}
}

// Start launches the worker. Calling it again has no effect.
func (l *Loop) Start() {
	l.startOnce.Do(func() {
		go l.run()
	})
}

// Stop rejects new tasks, lets queued ones finish and waits for the worker.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.Start()

		l.mu.Lock()
		l.stopped = true
		close(l.tasks)
		l.mu.Unlock()

		<-l.finished
	})
}

// Submit queues fn and blocks until it has run. ctx only bounds the wait for
// a queue slot; a task that has been queued always runs to completion.
func (l *Loop) Submit(ctx context.Context, fn func()) error {
	t := task{fn: fn, done: make(chan error, 1)}

	l.mu.RLock()
	if l.stopped {
		l.mu.RUnlock()
		return ErrLoopStopped
	}
	select {
	case l.tasks <- t:
		l.mu.RUnlock()
	case <-ctx.Done():
		l.mu.RUnlock()
		return ctx.Err()
	}

	return <-t.done
}

func (l *Loop) run() {
	defer close(l.finished)
	for t := range l.tasks {
		t.done <- execute(t.fn)
	}
}

func execute(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[error] operation=event_loop panic=%v", r)
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	fn()
	return nil
}
