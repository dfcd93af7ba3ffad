// Package state holds the board's single source of truth and the listener
// mechanism views use to re-render when it changes.
package state

import (
	"fmt"
	"log"
	"slices"
	"sync"
)

// Listener receives a snapshot of the stored items after every mutation.
type Listener[T any] func(items []T)

// ListenerError is reported to the failure handler when a listener panics.
type ListenerError struct {
	Token uint64
	Value any
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %d panicked: %v", e.Token, e.Value)
}

type registration[T any] struct {
	token uint64
	fn    Listener[T]
}

// Base is the "mutate then broadcast" primitive shared by stores.
type Base[T any] struct {
	mu        sync.Mutex
	nextToken uint64
	listeners []registration[T]
	onFailure func(error)
}

// AddListener registers fn and returns a handle that can detach it again.
// The same function may be registered more than once.
func (b *Base[T]) AddListener(fn Listener[T]) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextToken++
	token := b.nextToken
	b.listeners = append(b.listeners, registration[T]{token: token, fn: fn})

	return Subscription{token: token, remove: b.removeListener, once: &sync.Once{}}
}

// SetFailureHandler installs the callback invoked for each panicking listener.
// Without one, failures are logged.
func (b *Base[T]) SetFailureHandler(fn func(error)) {
	b.mu.Lock()
	b.onFailure = fn
	b.mu.Unlock()
}

// ListenerCount returns the number of registered listeners.
func (b *Base[T]) ListenerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// notifyListeners calls every listener in registration order. Each one gets
// its own copy of items. A panicking listener does not stop delivery to the
// ones after it.
func (b *Base[T]) notifyListeners(items []T) {
	b.mu.Lock()
	regs := slices.Clone(b.listeners)
	onFailure := b.onFailure
	b.mu.Unlock()

	for _, reg := range regs {
		if err := deliver(reg, slices.Clone(items)); err != nil {
			if onFailure != nil {
				onFailure(err)
				continue
			}
			log.Printf("[warn] operation=notify_listeners error=%v", err)
		}
	}
}

func deliver[T any](reg registration[T], items []T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ListenerError{Token: reg.token, Value: r}
		}
	}()
	reg.fn(items)
	return nil
}

func (b *Base[T]) removeListener(token uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = slices.DeleteFunc(b.listeners, func(r registration[T]) bool {
		return r.token == token
	})
}
