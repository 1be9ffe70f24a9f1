// Package loop provides a single-threaded, ordered task queue driven by a
// virtual clock. Periodic timers, posted input events and anything else that
// mutates game state run as tasks on one Queue, so no locking is needed as
// long as the Queue itself is only driven from one goroutine.
package loop

import (
	"container/heap"
	"time"
)

// Task is a unit of work executed by the queue.
type Task func()

// entry is one scheduled occurrence of a task.
type entry struct {
	due   time.Duration
	seq   uint64 // insertion order, breaks ties between equal due times
	task  Task
	timer *Timer // nil for posted one-shot tasks
	gen   uint64 // timer generation the entry was scheduled under
}

// entryHeap orders entries by due time, then insertion order.
type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(*entry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Queue is an ordered execution queue on a virtual clock.
// The zero value is not usable; create queues with New.
type Queue struct {
	now     time.Duration
	seq     uint64
	pending entryHeap
}

// New creates an empty queue with its clock at zero.
func New() *Queue {
	return &Queue{}
}

// Now returns the current virtual time.
func (q *Queue) Now() time.Duration {
	return q.now
}

// Post schedules a one-shot task at the current virtual time. It runs on the
// next Advance, after every task already due at or before now.
func (q *Queue) Post(t Task) {
	q.push(q.now, t, nil, 0)
}

// Pending returns the number of live scheduled occurrences.
// Occurrences of stopped timers are not counted.
func (q *Queue) Pending() int {
	n := 0
	for _, e := range q.pending {
		if !e.stale() {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d and runs every task due at or before
// the new time, in due-time order. Tasks may post further tasks and start or
// stop timers; anything they schedule inside the window also runs.
// Returns the number of tasks executed.
func (q *Queue) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := q.now + d
	ran := 0

	for len(q.pending) > 0 && q.pending[0].due <= target {
		e := heap.Pop(&q.pending).(*entry)
		if e.stale() {
			continue
		}
		q.now = e.due

		// Re-arm before running so the task can stop its own timer.
		if t := e.timer; t != nil {
			t.next = e.due + t.period
			q.push(t.next, e.task, t, e.gen)
		}

		e.task()
		ran++
	}

	q.now = target
	return ran
}

// push schedules an entry.
func (q *Queue) push(due time.Duration, t Task, timer *Timer, gen uint64) {
	q.seq++
	heap.Push(&q.pending, &entry{
		due:   due,
		seq:   q.seq,
		task:  t,
		timer: timer,
		gen:   gen,
	})
}

// stale reports whether the entry belongs to a stopped or restarted timer.
func (e *entry) stale() bool {
	return e.timer != nil && (!e.timer.running || e.gen != e.timer.gen)
}
