package system

import "time"

// DefaultSamples is the number of recent updates a system's average is computed over.
const DefaultSamples = 100

// timer keeps a rolling window of update durations.
type timer struct {
	samples []time.Duration
	next    int
	full    bool
	total   time.Duration
}

func newTimer(size int) *timer {
	if size <= 0 {
		size = DefaultSamples
	}
	return &timer{samples: make([]time.Duration, size)}
}

func (t *timer) record(d time.Duration) {
	t.total += d - t.samples[t.next]
	t.samples[t.next] = d
	t.next++
	if t.next == len(t.samples) {
		t.next = 0
		t.full = true
	}
}

func (t *timer) count() int {
	if t.full {
		return len(t.samples)
	}
	return t.next
}

// average is zero until the first sample.
func (t *timer) average() time.Duration {
	n := t.count()
	if n == 0 {
		return 0
	}
	return t.total / time.Duration(n)
}
