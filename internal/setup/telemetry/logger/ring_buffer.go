package logger

// ringBuffer keeps the most recent log lines in a fixed-size circular buffer.
type ringBuffer struct {
	lines     []string
	capacity  int
	head      int // next write position
	size      int // current number of buffered lines
	totalSeen int // lines written since the last rotation
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{
		lines:    make([]string, capacity),
		capacity: capacity,
	}
}

func (rb *ringBuffer) add(line string) {
	rb.lines[rb.head] = line

	rb.head = (rb.head + 1) % rb.capacity
	if rb.size < rb.capacity {
		rb.size++
	}

	rb.totalSeen++
}

// snapshot returns the buffered lines in chronological order.
func (rb *ringBuffer) snapshot() []string {
	if rb.size == 0 {
		return nil
	}

	result := make([]string, rb.size)
	start := (rb.head - rb.size + rb.capacity) % rb.capacity

	for i := range rb.size {
		result[i] = rb.lines[(start+i)%rb.capacity]
	}

	return result
}
