package pigface

import "time"

// Clock is a monotonic time source. Now is measured from an arbitrary epoch.
type Clock interface {
	Now() time.Duration
}

// SystemClock reads the monotonic wall clock relative to its creation.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock whose epoch is now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock only moves when told to. Tests and script replay use it.
type ManualClock struct {
	now time.Duration
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now += d }

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Duration) { c.now = t }

// FrameFunc runs once on the next frame. now is the frame timestamp.
type FrameFunc func(now time.Duration)

// FrameHandle identifies a requested frame callback. The zero handle is
// never issued.
type FrameHandle uint32

// Scheduler requests and cancels next-frame callbacks.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameHandle
	CancelFrame(h FrameHandle)
}

type frameCallback struct {
	id FrameHandle
	fn FrameFunc
}

// FrameQueue is a single-threaded Scheduler. Hosts call RunFrame once per
// tick. Callbacks requested while a frame runs are deferred to the next one;
// a cancelled callback never runs, even if it was already queued for the
// frame in progress.
type FrameQueue struct {
	pending []frameCallback
	running []frameCallback
	nextID  FrameHandle
}

// RequestFrame queues fn for the next RunFrame.
func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameHandle {
	q.nextID++
	if q.nextID == 0 {
		q.nextID++
	}
	q.pending = append(q.pending, frameCallback{id: q.nextID, fn: fn})
	return q.nextID
}

// CancelFrame removes a queued callback. Unknown or already-run handles are
// ignored.
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	if h == 0 {
		return
	}
	q.pending = removeFrameCallback(q.pending, h)
	q.running = removeFrameCallback(q.running, h)
}

func removeFrameCallback(s []frameCallback, id FrameHandle) []frameCallback {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = frameCallback{}
			return s[:len(s)-1]
		}
	}
	return s
}

// RunFrame runs every callback that was queued before the call and returns
// how many ran.
func (q *FrameQueue) RunFrame(now time.Duration) int {
	q.running = append(q.running[:0], q.pending...)
	for i := range q.pending {
		q.pending[i] = frameCallback{}
	}
	q.pending = q.pending[:0]

	ran := 0
	for len(q.running) > 0 {
		cb := q.running[0]
		q.running = q.running[1:]
		cb.fn(now)
		ran++
	}
	q.running = q.running[:0]
	return ran
}

// Pending returns the number of callbacks waiting for the next frame.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}
