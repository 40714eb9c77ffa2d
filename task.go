package sched

// TaskPoll is the result of advancing a [Task].
type TaskPoll uint8

const (
	// TaskPending reports that the inner computation suspended itself.
	TaskPending TaskPoll = iota

	// TaskReady reports that the inner computation has completed, either
	// during this poll or during an earlier one.
	TaskReady

	// TaskFrozen reports that the task is already being advanced somewhere
	// on the call stack and was not re-entered. Not an error: it is the
	// signal that drives wake redirection and deferral.
	TaskFrozen

	// TaskGone reports that the task's computation has been released.
	// A benign no-op: a deferred wake can outlive its target's owner.
	TaskGone
)

// taskState is the per-task reentrancy guard. It moves idle→inProgress and
// back on every poll, and one-way into taskCompleted or taskReleased.
type taskState uint8

const (
	taskIdle taskState = iota
	taskInProgress
	taskCompleted
	taskReleased
)

// A Task wraps exactly one [Computation] on behalf of a [Scheduler].
//
// Tasks form a forest. The parent link is set at most once, lazily, the
// first time a task is polled as a child of another task's poll ([SpawnJoin2]
// is the only construct that does this). Each [Run] or NestedLoop invocation
// contributes a root of its own.
//
// A task whose poll frame is live on the call stack is frozen; polling it
// again answers [TaskFrozen] rather than re-entering the computation. This
// is what makes nested loops safe.
type Task struct {
	sched           *Scheduler
	comp            Computation
	parent          *Task
	state           taskState
	deferredRelease bool
}

func (s *Scheduler) newTask(comp Computation) *Task {
	if comp == nil {
		panic("sched: nil Computation")
	}
	return &Task{sched: s, comp: comp}
}

// Poll advances t with no parent context. See [Task.PollChild] for the
// meaning of the result.
func (t *Task) Poll() TaskPoll {
	return t.poll(nil)
}

// PollChild advances t from within the poll of another task, recording that
// task as t's parent if none is recorded yet.
//
// PollChild answers [TaskFrozen] without touching the inner computation if
// t is already being advanced on the call stack, [TaskGone] if the inner
// computation has been released, and [TaskReady] idempotently once the
// computation has completed. Otherwise it advances the computation one step.
func (t *Task) PollChild(ctx *Context) TaskPoll {
	return t.poll(ctx.task)
}

func (t *Task) poll(parent *Task) TaskPoll {
	switch t.state {
	case taskInProgress:
		return TaskFrozen
	case taskReleased:
		return TaskGone
	case taskCompleted:
		return TaskReady
	}

	// The guard is held only around the literal advance step below, and
	// dropped on every exit path. Anything this poll triggers further down,
	// nested loops included, observes t as frozen.
	t.state = taskInProgress
	defer t.dropGuard()

	if parent != nil && t.parent == nil {
		t.parent = parent
	}

	ctx := Context{sched: t.sched, task: t}
	if t.comp.Poll(&ctx) == Ready {
		t.state = taskCompleted
		return TaskReady
	}
	return TaskPending
}

// dropGuard releases the reentrancy guard and applies a release that was
// requested while the guard was held.
func (t *Task) dropGuard() {
	if t.state == taskInProgress {
		t.state = taskIdle
	}
	if t.deferredRelease {
		t.deferredRelease = false
		t.release()
	}
}

// release drops the inner computation. Only the task's unique owner (the
// loop entry that created it, or a [SpawnJoin2]) calls it.
//
// Releasing a frozen task would corrupt the in-flight poll above us on the
// stack, so in that case release is deferred until the guard drops.
func (t *Task) release() {
	if t.state == taskInProgress {
		t.deferredRelease = true
		return
	}
	if t.state == taskReleased {
		return
	}
	comp := t.comp
	completed := t.state == taskCompleted
	t.comp = nil
	t.parent = nil
	t.state = taskReleased
	if !completed {
		if c, ok := comp.(Cleanup); ok {
			c.Cleanup()
		}
	}
}

// Completed reports whether the inner computation has run to [Ready].
// The flag flips false→true exactly once.
func (t *Task) Completed() bool {
	return t.state == taskCompleted
}

// Frozen reports whether t is currently being advanced somewhere on the
// call stack.
func (t *Task) Frozen() bool {
	return t.state == taskInProgress
}

// NearestUnfrozenAncestor resolves where a wake aimed at t must actually be
// delivered.
//
// It returns t itself if t has no parent or t is frozen (if t is frozen,
// every ancestor with a live poll frame above it is frozen too, so there is
// no point ascending). Otherwise it ascends parent links while the parent is
// not frozen and returns the highest task reachable without crossing a
// frozen one.
func (t *Task) NearestUnfrozenAncestor() *Task {
	if t.Frozen() || t.parent == nil {
		return t
	}
	if t.parent.Frozen() {
		return t
	}
	return t.parent.NearestUnfrozenAncestor()
}
