package sched

// Block returns a [Computation] that runs each of the given computations in
// sequence. When one completes, the next is advanced within the same poll,
// so for example a sleep following a sleep arms its timer immediately.
//
// Like [Join2], Block is a plain combinator: it creates no Tasks and its
// children share the caller's poll context.
func Block(s ...Computation) Computation {
	if len(s) == 1 {
		return s[0]
	}
	return &block{rest: s}
}

type block struct {
	rest []Computation
	done bool
}

func (b *block) Poll(ctx *Context) Poll {
	if b.done {
		panic("sched: Block polled after completion")
	}
	for len(b.rest) != 0 {
		if b.rest[0].Poll(ctx) == Pending {
			return Pending
		}
		b.rest[0] = nil
		b.rest = b.rest[1:]
	}
	b.done = true
	return Ready
}

func (b *block) Cleanup() {
	// Only the head can have suspended state; the rest were never polled.
	if !b.done && len(b.rest) != 0 {
		if c, ok := b.rest[0].(Cleanup); ok {
			c.Cleanup()
		}
	}
}

// Do returns a [Computation] that calls f once and completes.
func Do(f func()) Computation {
	called := false
	return PollFunc(func(ctx *Context) Poll {
		if called {
			panic("sched: Do polled after completion")
		}
		called = true
		f()
		return Ready
	})
}
