// Package dispatch is the request-dispatch core: the single-threaded
// message loop, its SessionState, the bounded-latency executor, and the
// handlers that compose the resolver, executor, and backend collaborators
// (spec §4.4–§4.7).
package dispatch

import "time"

// outcome carries a worker's result or recovered panic back to the caller.
type outcome[T any] struct {
	value    T
	panicVal any
}

// runBounded is this core's park/unpark-equivalent latch (spec §4.5, §9):
// it spawns fn in its own goroutine and waits up to deadline for it to
// finish, preferring a non-blocking join on wake. The worker is never
// preempted — a late result is simply dropped on the floor when the
// buffered channel's single send has no more reader waiting on it.
//
//   - completed=true, panicked=false: fn returned normally; value is valid.
//   - completed=true, panicked=true: fn panicked; value is the zero value.
//   - completed=false: the deadline elapsed before fn finished.
func runBounded[T any](deadline time.Duration, fn func() T) (value T, completed bool, panicked bool) {
	ch := make(chan outcome[T], 1)

	go func() {
		var o outcome[T]
		defer func() {
			if r := recover(); r != nil {
				o.panicVal = r
			}
			ch <- o
		}()
		o.value = fn()
	}()

	select {
	case o := <-ch:
		return o.value, true, o.panicVal != nil
	case <-time.After(deadline):
		var zero T
		return zero, false, false
	}
}
