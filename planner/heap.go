package planner

import "container/heap"

// openQueue implements container/heap.Interface over node ids stored in an
// arena, ordered by f = g + h with a deterministic action-name-ascending
// tie-break (spec §4.2: "Tie-break: deterministic by action name
// ascending, ensuring reproducible plans").
type openQueue struct {
	ids   []int
	arena *arena
}

func newOpenQueue(a *arena) *openQueue {
	q := &openQueue{arena: a}
	heap.Init(q)
	return q
}

func (q *openQueue) Len() int { return len(q.ids) }

func (q *openQueue) Less(i, j int) bool {
	ni, nj := q.arena.get(q.ids[i]), q.arena.get(q.ids[j])
	if ni.f() != nj.f() {
		return ni.f() < nj.f()
	}
	return ni.viaAction < nj.viaAction
}

func (q *openQueue) Swap(i, j int) {
	q.ids[i], q.ids[j] = q.ids[j], q.ids[i]
}

func (q *openQueue) Push(x interface{}) {
	q.ids = append(q.ids, x.(int))
}

func (q *openQueue) Pop() interface{} {
	old := q.ids
	n := len(old)
	id := old[n-1]
	q.ids = old[:n-1]
	return id
}

func (q *openQueue) push(id int) {
	heap.Push(q, id)
}

func (q *openQueue) pop() int {
	return heap.Pop(q).(int)
}

// fix re-establishes heap order, used after a re-opened node's g/h changes
// in place while it is still present in the open slice.
func (q *openQueue) fix() {
	heap.Init(q)
}
