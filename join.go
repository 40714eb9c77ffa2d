package sched

// Join2 returns a [Computation] that advances a and b in that fixed order on
// every poll and completes once both have completed. A child observed
// [Ready] is never polled again.
//
// Join2 creates no Tasks: both children are advanced inline under the
// caller's own poll context, so their timers wake the caller. This makes it
// cheap, but it does not participate in the task forest, so a wake cannot be
// redirected past it. If either child may call [Context.NestedLoop], use
// [SpawnJoin2] instead.
func Join2(a, b Computation) Computation {
	return &join2{a: a, b: b}
}

type join2 struct {
	a, b         Computation
	aDone, bDone bool
}

func (j *join2) Poll(ctx *Context) Poll {
	if j.aDone && j.bDone {
		panic("sched: Join2 polled after completion")
	}

	if !j.aDone && j.a.Poll(ctx) == Ready {
		j.aDone = true
		if j.bDone {
			return Ready
		}
	}

	if !j.bDone && j.b.Poll(ctx) == Ready {
		j.bDone = true
		if j.aDone {
			return Ready
		}
	}

	return Pending
}

func (j *join2) Cleanup() {
	if !j.aDone {
		if c, ok := j.a.(Cleanup); ok {
			c.Cleanup()
		}
	}
	if !j.bDone {
		if c, ok := j.b.(Cleanup); ok {
			c.Cleanup()
		}
	}
}
