package datum

import (
	"sync"
	"sync/atomic"
)

// Memoize wraps fn so it runs to success at most once.
//
// The returned function reads the cached value without locking once it is
// populated. Until then callers serialize on a per-instance mutex and re-check
// the cache, so concurrent first callers collapse into a single execution and
// all observe the same value. A failing call, or one that returns nil, leaves
// the cache empty and the next caller runs fn again.
func Memoize[T any](fn func() (T, error)) func() (T, error) {
	m := &memo[T]{fn: fn}
	return m.get
}

type memo[T any] struct {
	done atomic.Bool
	mu   sync.Mutex
	val  T
	fn   func() (T, error)
}

func (m *memo[T]) get() (T, error) {
	if m.done.Load() {
		return m.val, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done.Load() {
		return m.val, nil
	}

	v, err := m.fn()
	if err != nil {
		var zero T
		return zero, err
	}
	if isNil(v) {
		return v, nil
	}

	m.val = v
	m.done.Store(true)
	return v, nil
}
