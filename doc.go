// Package sched implements a single-threaded cooperative scheduler for
// suspendable computations.
//
// A [Computation] is a state machine that is advanced one step at a time by
// calling its Poll method, which reports either [Pending] or [Ready].
// Computations suspend themselves by arming a timer with the [Reactor] and
// returning Pending; the scheduler resumes them when the timer fires.
// There is no parallelism anywhere in this package. "Blocking" means exactly
// one thing: the reactor parking the calling thread until the nearest timer
// deadline.
//
// # Tasks and the Forest
//
// The scheduler does not advance computations directly. Each computation it
// is responsible for is wrapped in a [Task], which carries a completion flag
// and a reentrancy guard. Tasks form a forest: [SpawnJoin2] records, on first
// poll, which Task a child was polled from, and every [Run] or NestedLoop
// invocation creates a fresh root.
//
// # Nested Loops
//
// The distinguishing capability of this runtime is [Context.NestedLoop]: a
// computation that is itself mid-poll may synchronously drive an unrelated
// computation to completion before returning, for example to perform
// deterministic cleanup. The outer computation's stack frame stays exactly
// where it is while the inner loop runs on the same reactor.
//
// Doing that safely is what the Task machinery is for. A Task whose poll
// frame is live on the call stack is frozen and must not be re-entered, so:
//
//   - polling a frozen Task answers [TaskFrozen] instead of recursing;
//   - a wake aimed at a frozen Task is redirected to its nearest ancestor
//     that is not frozen;
//   - if no such ancestor exists, the wake is queued as a frozen event and
//     replayed on every scheduler iteration until delivery succeeds.
//
// A wake is therefore never dropped, and wakes are always delivered in
// reactor-deadline order.
//
// # Combinators
//
// [Join2] advances two computations inline and completes when both have
// completed. It creates no Tasks, which makes it cheap, but also means the
// scheduler cannot see through it: if either child enters a nested loop,
// wakes for the other child cannot be redirected and sit in the frozen-event
// queue until the nested loop exits. Use [SpawnJoin2] whenever a child may
// call [Context.NestedLoop]; it wraps both children in Tasks so that each
// can be advanced independently while the other is frozen.
//
// [Block] and [Do] sequence computations, the way ordinary code sequences
// statements.
//
// # Errors
//
// Every detectable failure in this package is a usage bug or an internal
// bug, never an environmental condition, so this package does not return
// errors; it panics. Polling a completed [Sleep], canceling an unknown
// timer, and waiting on an empty reactor are all fatal.
package sched
