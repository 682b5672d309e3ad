package playback

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
)

// Ring is a bounded FIFO of float32 samples that reads as float32
// little-endian bytes. Writes past capacity evict the oldest samples so
// output latency stays bounded. Reads past the end produce silence.
type Ring struct {
	mu     sync.Mutex
	buf    []float32
	head   int // next sample to read
	size   int
	closed bool

	underruns uint64
	overruns  uint64
}

// NewRing returns a ring holding up to capacity samples.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]float32, capacity)}
}

// Len is the number of buffered samples.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Cap is the ring capacity in samples.
func (r *Ring) Cap() int { return len(r.buf) }

// Write appends samples, evicting the oldest ones on overflow.
func (r *Ring) Write(samples []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	c := len(r.buf)
	if len(samples) >= c {
		r.overruns++
		copy(r.buf, samples[len(samples)-c:])
		r.head, r.size = 0, c
		return
	}
	if over := r.size + len(samples) - c; over > 0 {
		r.overruns++
		r.head = (r.head + over) % c
		r.size -= over
	}
	tail := (r.head + r.size) % c
	n := copy(r.buf[tail:], samples)
	copy(r.buf, samples[n:])
	r.size += len(samples)
}

// Read fills p with whole float32 samples, padding with silence when the
// ring runs dry. It returns io.EOF after Close.
func (r *Ring) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, io.EOF
	}

	want := len(p) / 4
	if want == 0 {
		return 0, nil
	}
	c := len(r.buf)
	i := 0
	for ; i < want && r.size > 0; i++ {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(r.buf[r.head]))
		r.head = (r.head + 1) % c
		r.size--
	}
	if i < want {
		r.underruns++
		clear(p[4*i : 4*want])
	}
	return 4 * want, nil
}

// Close makes further reads return io.EOF.
func (r *Ring) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.size = 0
}

// Stats returns the underrun and overrun counts.
func (r *Ring) Stats() (underruns, overruns uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.underruns, r.overruns
}
