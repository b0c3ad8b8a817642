// Package batch: queue with deduplication.
// Maintains a seen set so that the same export is never converted twice.
package batch

// Queue is a FIFO of jobs with path deduplication.
type Queue struct {
	items []Job
	seen  map[string]bool
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		seen: make(map[string]bool),
	}
}

// Add enqueues a job unless its normalized path has been seen before.
// It reports whether the job was added.
func (q *Queue) Add(job Job) bool {
	key := NormalizePath(job.Path)
	if q.seen[key] {
		return false
	}
	q.seen[key] = true
	q.items = append(q.items, job)
	return true
}

// Len returns the number of queued jobs.
func (q *Queue) Len() int {
	return len(q.items)
}

// All returns all queued jobs in insertion order.
func (q *Queue) All() []Job {
	return q.items
}
