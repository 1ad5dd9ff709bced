package cart

import (
	"errors"
	"sync"
)

// Queue serializes a session's remote cart mutations: a single mutation is
// in flight at any moment and later mutations run strictly in enqueue
// order, so the backend sees calls in the order the shopper made them.
type Queue struct {
	jobs chan func()

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

var errQueueClosed = errors.New("mutation queue closed")

func NewQueue(depth int) *Queue {
	if depth <= 0 {
		depth = 32
	}
	q := &Queue{
		jobs: make(chan func(), depth),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for job := range q.jobs {
		job()
	}
}

// Enqueue schedules a job behind all previously enqueued jobs.
func (q *Queue) Enqueue(job func()) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return errQueueClosed
	}
	q.jobs <- job
	return nil
}

// Close drains pending jobs and stops the worker.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	<-q.done
}
