package loop

import "time"

// Timer fires a task periodically on a Queue.
type Timer struct {
	q       *Queue
	period  time.Duration
	task    Task
	running bool
	gen     uint64
	next    time.Duration
}

// Every creates a started timer that runs t every period, first one period
// from now. Non-positive periods are treated as one nanosecond.
func (q *Queue) Every(period time.Duration, t Task) *Timer {
	if period <= 0 {
		period = time.Nanosecond
	}
	timer := &Timer{q: q, period: period, task: t}
	timer.Start()
	return timer
}

// Start arms a stopped timer so it next fires one period from now.
// Starting a running timer has no effect.
func (t *Timer) Start() {
	if t.running {
		return
	}
	t.running = true
	t.gen++
	t.next = t.q.now + t.period
	t.q.push(t.next, t.task, t, t.gen)
}

// Stop cancels the pending occurrence. Stopping a stopped timer has no effect.
func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.running = false
	t.gen++
}

// Running reports whether the timer is armed.
func (t *Timer) Running() bool {
	return t.running
}

// Period returns the timer's interval.
func (t *Timer) Period() time.Duration {
	return t.period
}

// Next returns the virtual time of the next occurrence. Only meaningful while running.
func (t *Timer) Next() time.Duration {
	return t.next
}
