package buffer

// Buffer is a fixed size float queue that keeps the most recent values.
type Buffer struct {
	size   int
	values []float64
}

// NewBuffer creates a new buffer.
func NewBuffer(size int) *Buffer {
	return &Buffer{
		size:   size,
		values: make([]float64, 0, size),
	}
}

// Push adds an element to the buffer.
// If the buffer overflows, the evicted element is returned together with true.
func (b *Buffer) Push(x float64) (float64, bool) {
	if b.size <= 0 {
		return x, true
	}
	b.values = append(b.values, x)
	if len(b.values) > b.size {
		value := b.values[0]
		b.values = b.values[1:]
		return value, true
	}
	return 0, false
}

// Get returns a copy of the buffer elements in the order they were added.
func (b *Buffer) Get() []float64 {
	vv := make([]float64, len(b.values))
	copy(vv, b.values)
	return vv
}

// Len returns the current length of the buffer.
func (b *Buffer) Len() int {
	return len(b.values)
}

// Last returns the most recent element.
func (b *Buffer) Last() (float64, bool) {
	if len(b.values) == 0 {
		return 0, false
	}
	return b.values[len(b.values)-1], true
}

// Reset drops all elements.
func (b *Buffer) Reset() {
	b.values = b.values[:0]
}
