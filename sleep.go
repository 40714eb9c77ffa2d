package sched

import "time"

// Sleep returns a [Computation] that suspends the caller for at least d.
//
// On first poll it arms a one-shot timer with the ambient [Reactor] and
// suspends; it completes on the poll delivered for that timer's firing and
// stays suspended on any other (stale) wake. Releasing it before the timer
// fires cancels the timer.
func Sleep(d time.Duration) Computation {
	return &sleep{state: sleepIdle, duration: d}
}

type sleepState uint8

const (
	sleepIdle sleepState = iota
	sleepArmed
	sleepDone
)

type sleep struct {
	state    sleepState
	duration time.Duration
	handle   TimerHandle
	reactor  *Reactor
}

func (s *sleep) Poll(ctx *Context) Poll {
	switch s.state {
	case sleepIdle:
		s.reactor = ctx.Scheduler().Reactor()
		s.handle = s.reactor.AddTimer(ctx.Task(), s.duration)
		s.state = sleepArmed
		return Pending
	case sleepArmed:
		if !ctx.Awoken(s.handle) {
			// A wake meant for someone else reached us, which is normal
			// under redirection. Our timer is still pending.
			return Pending
		}
		s.state = sleepDone
		return Ready
	default:
		panic("sched: Sleep polled after completion")
	}
}

// Cleanup cancels the outstanding timer if the sleep is released while
// armed. This is the only cancellation mechanism in the runtime.
func (s *sleep) Cleanup() {
	if s.state == sleepArmed {
		s.reactor.CancelTimer(s.handle)
		s.state = sleepDone
	}
}
