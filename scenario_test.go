package sched_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/toykit/sched"
)

// unit is the base duration of the timing scenarios. Assertions only check
// lower bounds, so a slow machine cannot fail them.
const unit = 20 * time.Millisecond

// nested wraps comp so that polling it drains comp in a nested loop and
// completes.
func nested(comp sched.Computation) sched.Computation {
	return sched.PollFunc(func(ctx *sched.Context) sched.Poll {
		ctx.NestedLoop(comp)
		return sched.Ready
	})
}

func TestRunSingleSleep(t *testing.T) {
	start := time.Now()
	done := false

	sched.Run(func() sched.Computation {
		return sched.Block(
			sched.Sleep(unit),
			sched.Do(func() { done = true }),
		)
	})

	require.True(t, done)
	require.GreaterOrEqual(t, time.Since(start), unit)
}

func TestSleepThenNestedSleep(t *testing.T) {
	start := time.Now()

	var order []string
	mark := func(s string) sched.Computation {
		return sched.Do(func() { order = append(order, s) })
	}

	sched.Run(func() sched.Computation {
		return sched.Block(
			sched.Sleep(unit),
			mark("outer-resumed"),
			nested(sched.Block(sched.Sleep(unit), mark("inner-done"))),
			mark("outer-done"),
		)
	})

	// Both sleeps elapse in sequence; the outer computation resumes only
	// after the inner loop has fully completed.
	require.GreaterOrEqual(t, time.Since(start), 2*unit)
	require.Equal(t, []string{"outer-resumed", "inner-done", "outer-done"}, order)
}

func TestSpawnJoinWithNestedLoop(t *testing.T) {
	start := time.Now()

	var order []string
	mark := func(s string) sched.Computation {
		return sched.Do(func() { order = append(order, s) })
	}

	a := sched.Block(sched.Sleep(2*unit), mark("a-done"))
	b := sched.Block(
		sched.Sleep(unit),
		nested(sched.Sleep(2*unit)),
		mark("b-done"),
	)

	sched.Run(func() sched.Computation {
		return sched.SpawnJoin2(a, b)
	})

	// B sleeps for unit, then for 2*unit inside its nested loop.
	require.GreaterOrEqual(t, time.Since(start), 3*unit)

	// A is a task of its own, so its wake at 2*unit is delivered while B's
	// nested loop is still running: A completes before B.
	require.Equal(t, []string{"a-done", "b-done"}, order)
}

func TestJoin2WithNestedLoopDefersOuterWake(t *testing.T) {
	start := time.Now()

	var order []string
	mark := func(s string) sched.Computation {
		return sched.Do(func() { order = append(order, s) })
	}

	a := sched.Block(sched.Sleep(2*unit), mark("a-done"))
	b := sched.Block(
		sched.Sleep(unit),
		mark("nested-start"),
		nested(sched.Sleep(2*unit)),
		mark("nested-exit"),
		mark("b-done"),
	)

	sched.Run(func() sched.Computation {
		return sched.Join2(a, b)
	})

	require.GreaterOrEqual(t, time.Since(start), 3*unit)

	// Join2 creates no tasks, so the wake for A firing at 2*unit cannot be
	// redirected while B's nested loop holds the join frozen. It is queued
	// and replayed after the nested loop exits: A finishes last, but its
	// wake is not lost.
	require.Equal(t,
		[]string{"nested-start", "nested-exit", "b-done", "a-done"},
		order)
}

func TestJoin2MatchesSpawnJoin2WithoutNestedLoops(t *testing.T) {
	for _, tc := range []struct {
		name string
		join func(a, b sched.Computation) sched.Computation
	}{
		{"Join2", sched.Join2},
		{"SpawnJoin2", sched.SpawnJoin2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			start := time.Now()
			var aDone, bDone bool

			sched.Run(func() sched.Computation {
				return tc.join(
					sched.Block(sched.Sleep(2*unit), sched.Do(func() { aDone = true })),
					sched.Block(sched.Sleep(unit), sched.Do(func() { bDone = true })),
				)
			})

			require.True(t, aDone)
			require.True(t, bDone)
			require.GreaterOrEqual(t, time.Since(start), 2*unit)
		})
	}
}

func TestNestedLoopsInterleave(t *testing.T) {
	// Two spawned tasks each enter a nested loop; the reactor fires the
	// globally earliest deadline regardless of which loop is waiting, so
	// both sides make progress and the join completes.
	start := time.Now()

	a := sched.Block(
		sched.Sleep(unit),
		nested(sched.Sleep(2*unit)),
	)
	b := sched.Block(
		sched.Sleep(2*unit),
		nested(sched.Sleep(unit)),
	)

	sched.Run(func() sched.Computation {
		return sched.SpawnJoin2(a, b)
	})

	require.GreaterOrEqual(t, time.Since(start), 3*unit)
}
