package sched

import (
	"slices"
	"sort"
)

type lesser[E any] interface {
	less(v E) bool
}

// A priorityqueue keeps its elements sorted by binary insertion.
// Elements that compare equal keep their insertion order.
type priorityqueue[E lesser[E]] struct {
	s []E
}

func (q *priorityqueue[E]) Empty() bool {
	return len(q.s) == 0
}

func (q *priorityqueue[E]) Len() int {
	return len(q.s)
}

func (q *priorityqueue[E]) Push(v E) {
	i := sort.Search(len(q.s), func(i int) bool {
		return v.less(q.s[i])
	})
	q.s = slices.Insert(q.s, i, v)
}

func (q *priorityqueue[E]) Pop() (v E) {
	v, q.s[0] = q.s[0], v
	q.s = q.s[1:]
	return v
}

// Remove removes and returns the first element for which match returns true.
func (q *priorityqueue[E]) Remove(match func(E) bool) (v E, ok bool) {
	for i, e := range q.s {
		if match(e) {
			q.s = slices.Delete(q.s, i, i+1)
			return e, true
		}
	}
	return v, false
}
