package fast

// rw.go holds linear Reader and Writer helpers over plain byte slices.
//
// They perform NO bounds checking errors: reading past the end panics with a runtime
// slice bounds error, so callers check Remaining() first when the input is untrusted.
// Fixed-width integers are big-endian, which is how binary container formats store them.

import (
	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
)

type Reader struct {
	// buf is the underlying data source.
	buf []byte
	// offset tracks the current reading position (cursor).
	offset int
}

type Writer struct {
	// buf is the accumulating byte slice.
	buf []byte
}

// NewReader creates a Reader to consume the provided byte slice.
func NewReader(bb []byte) *Reader {
	return &Reader{buf: bb}
}

// NewWriter creates a Writer that appends to the provided initial slice.
// Often called with `make([]byte, 0, capacity)` to pre-allocate memory.
func NewWriter(bb []byte) *Writer {
	return &Writer{buf: bb}
}

// Read consumes and returns the next 'n' bytes. The result shares memory with the reader.
func (r *Reader) Read(n int) []byte {
	res := r.buf[r.offset : r.offset+n]
	r.offset += n
	return res
}

// ReadByte consumes and returns a single byte.
func (r *Reader) ReadByte() byte {
	res := r.buf[r.offset]
	r.offset++
	return res
}

// Uint16 consumes a big-endian 16-bit value.
func (r *Reader) Uint16() uint16 {
	return bigendian.BytesToUint16(r.Read(2))
}

// Uint24 consumes a big-endian 24-bit value.
func (r *Reader) Uint24() uint32 {
	var word [4]byte
	copy(word[1:], r.Read(3))
	return bigendian.BytesToUint32(word[:])
}

// Uint32 consumes a big-endian 32-bit value.
func (r *Reader) Uint32() uint32 {
	return bigendian.BytesToUint32(r.Read(4))
}

// Int16 consumes a big-endian two's complement 16-bit value.
func (r *Reader) Int16() int16 {
	return int16(r.Uint16())
}

// Int32 consumes a big-endian two's complement 32-bit value.
func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

// Position returns the current cursor index of the Reader.
func (r *Reader) Position() int {
	return r.offset
}

// Remaining returns how many bytes are left to read.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.offset
}

// Bytes returns the entire underlying buffer of the Reader.
func (r *Reader) Bytes() []byte {
	return r.buf
}

// Empty checks if the Reader has reached the end of the buffer.
func (r *Reader) Empty() bool {
	return len(r.buf) == r.offset
}

// WriteByte appends a single byte to the buffer.
func (w *Writer) WriteByte(v byte) {
	w.buf = append(w.buf, v)
}

// Write appends a slice of bytes (bulk write) to the buffer.
func (w *Writer) Write(v []byte) {
	w.buf = append(w.buf, v...)
}

// WriteUint16 appends a big-endian 16-bit value.
func (w *Writer) WriteUint16(v uint16) {
	w.Write(bigendian.Uint16ToBytes(v))
}

// WriteUint24 appends the low 24 bits of v, big-endian.
func (w *Writer) WriteUint24(v uint32) {
	w.Write(bigendian.Uint32ToBytes(v)[1:])
}

// WriteUint32 appends a big-endian 32-bit value.
func (w *Writer) WriteUint32(v uint32) {
	w.Write(bigendian.Uint32ToBytes(v))
}

// WriteInt16 appends a big-endian two's complement 16-bit value.
func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

// WriteInt32 appends a big-endian two's complement 32-bit value.
func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

// Bytes returns the accumulated content of the Writer.
func (w *Writer) Bytes() []byte {
	return w.buf
}
