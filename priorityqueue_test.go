package sched

import (
	"testing"
	"time"
)

func tm(handle TimerHandle, at int) *pendingTimer {
	base := time.Unix(0, 0)
	return &pendingTimer{handle: handle, deadline: base.Add(time.Duration(at) * time.Second)}
}

func TestPriorityQueue(t *testing.T) {
	t.Run("Overall", func(t *testing.T) {
		var pq priorityqueue[*pendingTimer]

		for i, at := range []int{5, 1, 4, 2, 3} {
			pq.Push(tm(TimerHandle(i+1), at))
		}

		for _, at := range []int{1, 2} {
			if u := pq.Pop(); u.deadline != tm(0, at).deadline {
				t.FailNow()
			}
		}

		pq.Push(tm(6, 0))

		for _, at := range []int{0, 3, 4, 5} {
			if u := pq.Pop(); u.deadline != tm(0, at).deadline {
				t.FailNow()
			}
		}

		if !pq.Empty() {
			t.FailNow()
		}
	})
	t.Run("FIFO", func(t *testing.T) {
		var pq priorityqueue[*pendingTimer]

		u := tm(1, 7)
		v := tm(2, 7)
		w := tm(3, 7)

		pq.Push(w)
		pq.Push(u)

		// Equal deadlines order by handle, not by insertion.
		pq.Push(v)

		if pq.Pop() != u || pq.Pop() != v || pq.Pop() != w {
			t.FailNow()
		}
	})
	t.Run("Remove", func(t *testing.T) {
		var pq priorityqueue[*pendingTimer]

		for i, at := range []int{1, 2, 3} {
			pq.Push(tm(TimerHandle(i+1), at))
		}

		if u, ok := pq.Remove(func(u *pendingTimer) bool { return u.handle == 2 }); !ok || u.handle != 2 {
			t.FailNow()
		}

		if _, ok := pq.Remove(func(u *pendingTimer) bool { return u.handle == 2 }); ok {
			t.FailNow()
		}

		if pq.Len() != 2 {
			t.FailNow()
		}

		if pq.Pop().handle != 1 || pq.Pop().handle != 3 {
			t.FailNow()
		}
	})
}
