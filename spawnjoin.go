package sched

// SpawnJoin2 returns a [Computation] that wraps a and b in Tasks of their
// own and completes once both have completed.
//
// Because the children are Tasks, they join the task forest (with the
// calling task as parent), and the scheduler can advance either one directly
// while the other, or the join itself, is frozen in a nested loop. This is
// the combinator to use whenever a child may call [Context.NestedLoop], and
// it is the only construct that creates new Tasks.
func SpawnJoin2(a, b Computation) Computation {
	return &spawnJoin2{a: a, b: b}
}

type spawnJoin2 struct {
	a, b     Computation
	t1, t2   *Task
	released bool
}

func (j *spawnJoin2) Poll(ctx *Context) Poll {
	if j.t1 == nil {
		// The child tasks are new roots until this first poll records
		// the calling task as their parent, below.
		s := ctx.Scheduler()
		j.t1 = s.newTask(j.a)
		j.t2 = s.newTask(j.b)
	}

	// Either child may have been completed by the scheduler between our
	// polls, woken by its own timer.
	if j.t1.Completed() && j.t2.Completed() {
		return Ready
	}

	if !j.t1.Completed() {
		j.t1.PollChild(ctx)
		if j.t1.Completed() && j.t2.Completed() {
			return Ready
		}
	}

	if !j.t2.Completed() {
		j.t2.PollChild(ctx)
		if j.t1.Completed() && j.t2.Completed() {
			return Ready
		}
	}

	return Pending
}

func (j *spawnJoin2) Cleanup() {
	if j.released {
		return
	}
	j.released = true
	if j.t1 != nil {
		j.t1.release()
		j.t2.release()
		return
	}
	// Never polled: no tasks exist, release the computations directly.
	if c, ok := j.a.(Cleanup); ok {
		c.Cleanup()
	}
	if c, ok := j.b.(Cleanup); ok {
		c.Cleanup()
	}
}
