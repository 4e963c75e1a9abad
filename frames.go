package ambient

import "sync"

type frameRequest struct {
	handle FrameHandle
	fn     func()
}

// FrameQueue is a Scheduler driven by the host loop: callbacks requested now
// run on the next RunFrame call, in request order. Callbacks requested while
// a frame runs wait for the following frame.
type FrameQueue struct {
	mu      sync.Mutex
	next    FrameHandle
	pending []frameRequest
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

func (q *FrameQueue) RequestFrame(fn func()) FrameHandle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending = append(q.pending, frameRequest{handle: q.next, fn: fn})
	return q.next
}

func (q *FrameQueue) CancelFrame(h FrameHandle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, r := range q.pending {
		if r.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// RunFrame runs the callbacks queued so far and returns how many ran.
func (q *FrameQueue) RunFrame() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, r := range batch {
		r.fn()
	}
	return len(batch)
}

func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
