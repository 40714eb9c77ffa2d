package sched

// Poll is the result of advancing a [Computation] by one step.
type Poll uint8

const (
	// Pending reports that a computation is not yet done and has arranged
	// to be woken in the future.
	Pending Poll = iota

	// Ready reports that a computation is done. A computation that has
	// answered Ready must never be polled again.
	Ready
)

// A Computation is a suspendable unit of work, advanced one step at a time.
//
// Poll either completes the next step of the computation and returns [Ready],
// or suspends it and returns [Pending]. Before returning Pending,
// a computation must arrange a future wake, normally by arming a timer with
// the ambient [Reactor]; otherwise it is never polled again.
//
// Polling a computation after it has returned [Ready] is a usage error and
// panics.
type Computation interface {
	Poll(ctx *Context) Poll
}

// A PollFunc is a func that implements the [Computation] interface.
//
// It is the easiest way to write an ad hoc computation, for example one that
// enters a nested loop:
//
//	sched.PollFunc(func(ctx *sched.Context) sched.Poll {
//		ctx.NestedLoop(cleanup)
//		return sched.Ready
//	})
type PollFunc func(ctx *Context) Poll

// Poll implements the [Computation] interface.
func (f PollFunc) Poll(ctx *Context) Poll { return f(ctx) }

// Cleanup represents any type that carries a Cleanup method.
//
// When a [Task] releases a computation that has not completed, it calls
// the computation's Cleanup method, if there is one, so the computation can
// undo outstanding registrations. [Sleep] uses this to cancel its armed
// timer; the join combinators use it to forward release to their children.
type Cleanup interface {
	Cleanup()
}

// A CleanupFunc is a func() that implements the [Cleanup] interface.
type CleanupFunc func()

// Cleanup implements the [Cleanup] interface.
func (f CleanupFunc) Cleanup() { f() }

// A Context is passed to every [Computation.Poll] call. It identifies the
// [Task] being advanced and gives the computation access to the ambient
// [Scheduler].
//
// A Context is only valid for the duration of the Poll call it was created
// for. Computations must not retain it.
type Context struct {
	sched *Scheduler
	task  *Task
}

// Scheduler returns the ambient [Scheduler].
func (c *Context) Scheduler() *Scheduler { return c.sched }

// Task returns the [Task] being advanced. Leaf computations use it as the
// wake target when registering with the [Reactor].
func (c *Context) Task() *Task { return c.task }

// Awoken reports whether h is the timer whose firing caused the current
// round of polling. A computation that armed a timer uses this to tell its
// own wake apart from a stale one.
func (c *Context) Awoken(h TimerHandle) bool { return c.sched.awoken == h && h != 0 }

// NestedLoop synchronously drives comp to completion on the ambient
// [Scheduler] and then returns. See [Scheduler.NestedLoop].
func (c *Context) NestedLoop(comp Computation) { c.sched.NestedLoop(comp) }
