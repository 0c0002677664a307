package object

import "github.com/tomz197/starfall/internal/draw"

// Trail is a fixed-capacity ring of recent positions, newest first.
// Pushing onto a full trail evicts the oldest sample.
type Trail struct {
	buf  []draw.Point
	head int // index of the newest sample
	n    int
}

// NewTrail creates an empty trail that keeps at most capacity samples.
func NewTrail(capacity int) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	return &Trail{buf: make([]draw.Point, capacity)}
}

// Push records a new sample.
func (t *Trail) Push(p draw.Point) {
	if len(t.buf) == 0 {
		return
	}
	t.head = (t.head + 1) % len(t.buf)
	t.buf[t.head] = p
	if t.n < len(t.buf) {
		t.n++
	}
}

// PushOldest records a sample behind every existing one. It is a no-op on a
// full trail; used to pre-seed a trail from the far end.
func (t *Trail) PushOldest(p draw.Point) {
	if t.n >= len(t.buf) {
		return
	}
	if t.n == 0 {
		t.Push(p)
		return
	}
	idx := (t.head - t.n + len(t.buf)) % len(t.buf)
	t.buf[idx] = p
	t.n++
}

// Len returns the number of samples held.
func (t *Trail) Len() int {
	return t.n
}

// Cap returns the trail capacity.
func (t *Trail) Cap() int {
	return len(t.buf)
}

// At returns the i-th sample, 0 being the newest.
func (t *Trail) At(i int) draw.Point {
	if i < 0 || i >= t.n {
		panic("object: trail index out of range")
	}
	return t.buf[(t.head-i+len(t.buf))%len(t.buf)]
}

// Points appends the samples newest first to dst.
func (t *Trail) Points(dst []draw.Point) []draw.Point {
	for i := 0; i < t.n; i++ {
		dst = append(dst, t.At(i))
	}
	return dst
}

// Reset empties the trail without releasing its storage.
func (t *Trail) Reset() {
	t.head = 0
	t.n = 0
}
