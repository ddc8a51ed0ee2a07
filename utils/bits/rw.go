package bits

import "errors"

// ErrReadPastEnd is raised when a Reader is asked for more bits than remain.
var ErrReadPastEnd = errors.New("bits: read past the end of the buffer")

type (
	// Writer accumulates bits most significant first.
	// The bits are kept left-aligned while writing and re-aligned by Buffer().
	Writer struct {
		acc   []byte
		count int // number of bits written so far
	}

	// Reader consumes the significant bits of a Buffer most significant first.
	Reader struct {
		buf *Buffer
		pos int // index of the next significant bit to read
	}
)

// NewWriter creates an empty bit writer.
func NewWriter() *Writer {
	return &Writer{}
}

// NewReader creates a reader positioned at the first significant bit of buf.
func NewReader(buf *Buffer) *Reader {
	return &Reader{buf: buf}
}

// Write appends the lowest 'bits' bits of v, most significant first.
// Example: Write(3, 5) -> appends '101'.
func (w *Writer) Write(bits int, v uint) {
	if bits <= 0 {
		return
	}
	// Start a fresh byte once the current one is full.
	if w.count&7 == 0 {
		w.acc = append(w.acc, 0)
	}
	free := 8 - w.count&7

	if bits <= free {
		// Case 1: everything fits into the current byte.
		w.acc[len(w.acc)-1] |= byte((v & (1<<bits - 1)) << (free - bits))
		w.count += bits
		return
	}

	// Case 2: fill the current byte with the top bits, then write the rest.
	w.acc[len(w.acc)-1] |= byte((v >> (bits - free)) & (1<<free - 1))
	w.count += free
	w.Write(bits-free, v)
}

// WriteBuffer appends every significant bit of b.
func (w *Writer) WriteBuffer(b *Buffer) {
	for i := 0; i < b.Len(); i++ {
		w.Write(1, b.Bit(i))
	}
}

// Len returns the number of bits written.
func (w *Writer) Len() int {
	return w.count
}

// Buffer returns the written bits as a right-aligned Buffer.
func (w *Writer) Buffer() *Buffer {
	data := make([]byte, len(w.acc))
	copy(data, w.acc)
	out := &Buffer{data: data, count: 8 * len(data)}
	if pad := out.count - w.count; pad > 0 {
		out.ShiftRight(pad, false)
	}
	return out
}

// Read consumes 'bits' bits and returns them as an integer, first bit most significant.
func (r *Reader) Read(bits int) (v uint) {
	if bits > r.NonReadBits() {
		panic(ErrReadPastEnd)
	}
	for i := 0; i < bits; i++ {
		v = v<<1 | r.buf.Bit(r.pos)
		r.pos++
	}
	return v
}

// View returns the next 'bits' bits without consuming them.
func (r *Reader) View(bits int) uint {
	cp := *r
	return cp.Read(bits)
}

// Skip moves the reader forward by 'bits' bits.
func (r *Reader) Skip(bits int) {
	if bits > r.NonReadBits() {
		panic(ErrReadPastEnd)
	}
	r.pos += bits
}

// Position returns the index of the next bit to read.
func (r *Reader) Position() int {
	return r.pos
}

// NonReadBits returns the number of bits left to read.
func (r *Reader) NonReadBits() int {
	return r.buf.Len() - r.pos
}
