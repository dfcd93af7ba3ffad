package state

import "sync"

// Subscription is the handle returned by AddListener.
type Subscription struct {
	token  uint64
	remove func(uint64)
	once   *sync.Once
}

// Unsubscribe detaches the listener. Calling it more than once is harmless.
func (s Subscription) Unsubscribe() {
	if s.remove == nil {
		return
	}
	s.once.Do(func() { s.remove(s.token) })
}
