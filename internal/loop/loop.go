// Package loop splits remote work into an off-loop task and an on-loop
// continuation. Component state is only touched by continuations, which the
// owner runs on its own goroutine (the bubbletea Update loop in the TUI).
package loop

import (
	"context"
	"sync"
)

// Continuation applies the outcome of a task. It runs on the owner's loop.
type Continuation func()

// Task performs blocking work and returns what to do with the result.
// A nil continuation means there is nothing to apply.
type Task func(ctx context.Context) Continuation

// Runner schedules tasks
type Runner interface {
	Go(name string, task Task)
}

// Inline runs each task and its continuation immediately on the caller's goroutine
type Inline struct {
	Ctx context.Context
}

// Go implements Runner
func (r Inline) Go(name string, task Task) {
	ctx := r.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if next := task(ctx); next != nil {
		next()
	}
}

// Pending is a task waiting in a Queue
type Pending struct {
	Name string
	Task Task
}

// Queue holds tasks until the owner drains them. The TUI turns drained tasks
// into commands; tests drain them by hand to control completion order.
type Queue struct {
	mu      sync.Mutex
	pending []Pending
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Go implements Runner
func (q *Queue) Go(name string, task Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, Pending{Name: name, Task: task})
}

// Len returns the number of waiting tasks
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain removes and returns every waiting task in submission order
func (q *Queue) Drain() []Pending {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// RunAll executes waiting tasks in FIFO order, including tasks scheduled by
// continuations, until the queue is empty.
func (q *Queue) RunAll(ctx context.Context) {
	for {
		batch := q.Drain()
		if len(batch) == 0 {
			return
		}
		for _, p := range batch {
			if next := p.Task(ctx); next != nil {
				next()
			}
		}
	}
}
