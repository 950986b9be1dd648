package util

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

//*******************************************
// priority queue
//*******************************************

type pq_item[T any, P constraints.Ordered] struct {
	value T
	prio  P
	// insertion counter used as secondary ordering key, so that items with
	// equal priority always dequeue in insertion order
	count int64
}

type pq_heap[T any, P constraints.Ordered] []pq_item[T, P]

func (self pq_heap[T, P]) Len() int { return len(self) }
func (self pq_heap[T, P]) Less(i, j int) bool {
	if self[i].prio != self[j].prio {
		return self[i].prio < self[j].prio
	}
	return self[i].count < self[j].count
}
func (self pq_heap[T, P]) Swap(i, j int) { self[i], self[j] = self[j], self[i] }
func (self *pq_heap[T, P]) Push(item any) {
	*self = append(*self, item.(pq_item[T, P]))
}
func (self *pq_heap[T, P]) Pop() any {
	old := *self
	n := len(old)
	item := old[n-1]
	*self = old[:n-1]
	return item
}

// PriorityQueue is a min-heap keyed by priority with a deterministic
// insertion-order tie-break.
type PriorityQueue[T any, P constraints.Ordered] struct {
	items   *pq_heap[T, P]
	counter int64
}

func NewPriorityQueue[T any, P constraints.Ordered](cap int) PriorityQueue[T, P] {
	items := make(pq_heap[T, P], 0, cap)
	return PriorityQueue[T, P]{
		items: &items,
	}
}

func (self *PriorityQueue[T, P]) Enqueue(value T, prio P) {
	self.counter += 1
	heap.Push(self.items, pq_item[T, P]{value: value, prio: prio, count: self.counter})
}

func (self *PriorityQueue[T, P]) Dequeue() (T, bool) {
	if self.items.Len() == 0 {
		var t T
		return t, false
	}
	item := heap.Pop(self.items).(pq_item[T, P])
	return item.value, true
}

// PeekPrio returns the priority of the smallest item without removing it.
func (self *PriorityQueue[T, P]) PeekPrio() (P, bool) {
	if self.items.Len() == 0 {
		var p P
		return p, false
	}
	return (*self.items)[0].prio, true
}

func (self *PriorityQueue[T, P]) Len() int {
	return self.items.Len()
}

func (self *PriorityQueue[T, P]) Clear() {
	*self.items = (*self.items)[:0]
}
