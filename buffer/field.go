package buffer

// Field is an immutable byte string held in a chain of pooled buffers,
// together with one read cursor spanning the whole chain. The input is
// copied at construction; nothing aliases caller memory afterwards.
type Field struct {
	bufs   []*Buffer
	length int
	Cursor Cursor
}

// NewField copies data into a freshly allocated buffer chain. Empty input
// yields no field, which signals "nothing to represent" rather than an
// error.
func NewField(data []byte) *Field {
	if len(data) == 0 {
		return nil
	}
	f := &Field{length: len(data)}
	for len(data) > 0 {
		b := Get()
		n := b.Insert(data)
		data = data[n:]
		f.bufs = append(f.bufs, b)
	}
	f.Cursor = Cursor{bufs: f.bufs, length: f.length, rem: f.length}
	return f
}

// NewFieldString is NewField for string input.
func NewFieldString(text string) *Field {
	return NewField([]byte(text))
}

func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return f.length
}

// Buffers reports the length of the chain.
func (f *Field) Buffers() int {
	if f == nil {
		return 0
	}
	return len(f.bufs)
}

// Free returns every buffer in the chain to the pool and invalidates the
// cursor. Safe on a nil field.
func (f *Field) Free() {
	if f == nil {
		return
	}
	for _, b := range f.bufs {
		Put(b)
	}
	f.bufs = nil
	f.length = 0
	f.Cursor = Cursor{}
}

// Cursor is a zero-copy, single-pass iterator over a field's buffer chain.
// It never rewinds implicitly; callers needing random access snapshot the
// cursor with Mark and put it back with Restore, or rewind explicitly with
// Reset.
type Cursor struct {
	bufs   []*Buffer
	length int
	idx    int // current buffer in the chain
	off    int // offset within the current buffer
	rem    int // bytes left to read
}

func (c *Cursor) Remaining() int {
	return c.rem
}

// Octet yields the next byte of the underlying string, advancing the
// cursor. The second return is false once the cursor is exhausted.
func (c *Cursor) Octet() (byte, bool) {
	if c.rem == 0 {
		return 0, false
	}
	for c.off >= c.bufs[c.idx].used {
		c.idx++
		c.off = 0
	}
	v := c.bufs[c.idx].data[c.off]
	c.off++
	c.rem--
	return v, true
}

// Mark snapshots the cursor position.
func (c *Cursor) Mark() Cursor {
	return *c
}

// Restore rewinds the cursor to a previously taken Mark.
func (c *Cursor) Restore(m Cursor) {
	*c = m
}

// Reset rewinds the cursor to offset zero.
func (c *Cursor) Reset() {
	c.idx = 0
	c.off = 0
	c.rem = c.length
}
