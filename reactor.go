package sched

import "time"

// A TimerHandle identifies one timer registration with a [Reactor].
//
// Handles are minted in increasing order and are never reused for the
// lifetime of the process. The zero value identifies no timer.
type TimerHandle uint64

// A pendingTimer is owned exclusively by the reactor's queue. It leaves the
// queue exactly once, either by firing or by cancellation.
type pendingTimer struct {
	handle   TimerHandle
	deadline time.Time
	target   *Task
}

// less orders timers by deadline; equal deadlines by registration order.
func (t *pendingTimer) less(other *pendingTimer) bool {
	if !t.deadline.Equal(other.deadline) {
		return t.deadline.Before(other.deadline)
	}
	return t.handle < other.handle
}

// A Reactor holds pending one-shot timers and hands out the earliest-firing
// one on demand, blocking the calling thread until its deadline.
//
// The timer is the only resource this runtime models; anything else that can
// wake a [Task] would register here analogously. The wait step is the only
// thread-blocking operation in the package.
//
// A Reactor is single-thread-owned; it must not be shared across goroutines.
type Reactor struct {
	timers     priorityqueue[*pendingTimer]
	lastHandle TimerHandle
}

// AddTimer registers a one-shot timer that elapses after d and, when it
// fires, wakes target. It returns the handle identifying the registration.
func (r *Reactor) AddTimer(target *Task, d time.Duration) TimerHandle {
	r.lastHandle++
	r.timers.Push(&pendingTimer{
		handle:   r.lastHandle,
		deadline: time.Now().Add(d),
		target:   target,
	})
	return r.lastHandle
}

// CancelTimer removes a still-pending timer.
//
// Canceling a handle that is not pending, including one that has already
// fired, is a usage error and panics.
func (r *Reactor) CancelTimer(h TimerHandle) {
	_, ok := r.timers.Remove(func(t *pendingTimer) bool { return t.handle == h })
	if !ok {
		panic("sched: canceled unknown timer")
	}
}

// wait removes the pending timer with the earliest deadline, blocks the
// calling thread until that deadline has passed, and returns the timer's
// handle and wake target. It reports false if no timers are pending, in
// which case nothing in the system can make progress again.
func (r *Reactor) wait() (TimerHandle, *Task, bool) {
	if r.timers.Empty() {
		return 0, nil, false
	}
	t := r.timers.Pop()
	if d := time.Until(t.deadline); d > 0 {
		time.Sleep(d)
	}
	return t.handle, t.target, true
}
