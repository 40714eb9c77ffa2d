package sched

import "slices"

// A frozenEvent is a wake that could not be delivered because its target was
// frozen and had no unfrozen ancestor. It is retried on every scheduler
// iteration until the target becomes reachable again; a wake is never
// dropped.
type frozenEvent struct {
	handle TimerHandle
	task   *Task
}

// A Scheduler owns a [Reactor], the last-fired timer identity, and the queue
// of deferred frozen events, and implements the reentrant scheduling loop.
//
// A Scheduler is single-thread-owned. All of its loops, however deeply
// nested, run on the one thread that called [Run].
type Scheduler struct {
	reactor Reactor
	awoken  TimerHandle
	frozen  []frozenEvent
}

// NewScheduler returns a fresh Scheduler with an empty reactor.
//
// Most programs never need one explicitly; [Run] creates and drives its own.
func NewScheduler() *Scheduler {
	return new(Scheduler)
}

// Reactor returns the scheduler's timer reactor, for leaf computations that
// need to register or cancel timers.
func (s *Scheduler) Reactor() *Reactor {
	return &s.reactor
}

// Run constructs a [Scheduler], calls starter to obtain the initial
// computation, and drives that computation to completion as the sole root.
// It is the process-level entry point of the runtime.
func Run(starter func() Computation) {
	NewScheduler().NestedLoop(starter())
}

// NestedLoop wraps comp in a new root [Task] and synchronously drives it to
// completion, then returns.
//
// NestedLoop is reentrant: a computation that is itself mid-poll may call it
// (via [Context.NestedLoop]) to drain an unrelated sub-computation before
// returning to its caller. The inner loop shares this scheduler's reactor
// and frozen-event queue with every outer loop, and interleaves fairly with
// them because the reactor always fires the globally earliest deadline, no
// matter which loop is waiting.
//
// Panics if the reactor runs out of timers while the root is incomplete:
// with no pending timer there is no remaining source of progress.
func (s *Scheduler) NestedLoop(comp Computation) {
	root := s.newTask(comp)
	defer root.release()

	// First poll, so the computation can arm its timers.
	if root.Poll() == TaskReady {
		return
	}

	for {
		s.replayFrozen()

		// Forests interleave under nested loops: our root may have been
		// completed by a replay above, or by some inner loop.
		if root.Completed() {
			return
		}

		handle, target, ok := s.reactor.wait()
		if !ok {
			panic("sched: reactor has no pending timers and the root is not complete")
		}
		s.awoken = handle

		t := target.NearestUnfrozenAncestor()
		if t.Poll() == TaskFrozen {
			// The whole path up from the target is occupied on the call
			// stack. Queue the wake; some later iteration delivers it.
			s.frozen = append(s.frozen, frozenEvent{handle: handle, task: t})
		}

		if root.Completed() {
			return
		}
	}
}

// replayFrozen delivers every queued frozen event whose task has become
// unfrozen, repeating until none is deliverable.
func (s *Scheduler) replayFrozen() {
	for {
		i := slices.IndexFunc(s.frozen, func(ev frozenEvent) bool {
			return !ev.task.Frozen()
		})
		if i < 0 {
			return
		}
		ev := s.frozen[i]
		s.frozen = slices.Delete(s.frozen, i, i+1)
		s.awoken = ev.handle

		switch ev.task.NearestUnfrozenAncestor().Poll() {
		case TaskFrozen:
			panic("sched: internal error: task frozen after unfrozen check")
		case TaskGone:
			// The task's owner was released while the event sat in the
			// queue. Nothing to deliver.
		}
	}
}
