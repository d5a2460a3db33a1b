package buffer

import "sync"

// Size is the fixed capacity of every pooled buffer.
const Size = 512

// Buffer is one fixed-capacity segment of a field's byte chain. Buffers are
// recycled through a process-wide pool and filled left to right, each to
// capacity before the next one is taken.
type Buffer struct {
	data [Size]byte
	used int
}

var pool = sync.Pool{New: func() any { return new(Buffer) }}

// Get takes an empty buffer from the pool.
func Get() *Buffer {
	b := pool.Get().(*Buffer)
	b.used = 0
	return b
}

// Put returns a buffer to the pool. The caller must not touch it afterwards.
func Put(b *Buffer) {
	pool.Put(b)
}

// Insert appends as much of p as fits and reports how many bytes were taken.
func (b *Buffer) Insert(p []byte) int {
	n := copy(b.data[b.used:], p)
	b.used += n
	return n
}

func (b *Buffer) Len() int {
	return b.used
}

func (b *Buffer) Bytes() []byte {
	return b.data[:b.used]
}
