package dispatch

import "sync"

// keyedQueue runs jobs sharing a key one at a time, in the order they were
// enqueued. Each key with pending work has one drain goroutine that exits
// once its queue is empty.
type keyedQueue struct {
	mu      sync.Mutex
	pending map[string][]func()
	wg      *sync.WaitGroup
}

func newKeyedQueue(wg *sync.WaitGroup) *keyedQueue {
	return &keyedQueue{
		pending: make(map[string][]func()),
		wg:      wg,
	}
}

func (q *keyedQueue) enqueue(key string, job func()) {
	q.wg.Add(1)

	q.mu.Lock()
	jobs, active := q.pending[key]
	q.pending[key] = append(jobs, job)
	q.mu.Unlock()

	if !active {
		go q.drain(key)
	}
}

func (q *keyedQueue) drain(key string) {
	for {
		q.mu.Lock()
		jobs := q.pending[key]
		if len(jobs) == 0 {
			delete(q.pending, key)
			q.mu.Unlock()
			return
		}
		job := jobs[0]
		q.pending[key] = jobs[1:]
		q.mu.Unlock()

		job()
		q.wg.Done()
	}
}

// active returns the number of keys with queued or running work
func (q *keyedQueue) active() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
