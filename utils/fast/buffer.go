package fast

// buffer.go provides Buffer, the owned byte region every scanner in this module works on.
//
// Purpose:
// - A Buffer owns its bytes: constructors copy their input, Copy/Slice return independent regions.
// - The length of the view is always exactly the length of the buffer; growth happens only
//   through Realloc, Append or SetBytes.
// - Text and hex helpers exist so tests and callers can build patterns without literal byte slices.

import (
	"bytes"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/text/encoding/charmap"
)

var (
	// ErrStartOutOfRange is returned when an explicit start position lies beyond the buffer.
	ErrStartOutOfRange = errors.New("fast: start position is out of range")
	// ErrNotLatin1 is returned when text holds a code point that does not fit in one byte.
	ErrNotLatin1 = errors.New("fast: text contains characters outside Latin-1")
)

// Buffer is an owned, growable, contiguous byte region.
type Buffer struct {
	buf []byte
}

// New allocates a zero-filled buffer of the given size.
func New(size int) *Buffer {
	if size < 0 {
		size = 0
	}
	return &Buffer{buf: make([]byte, size)}
}

// NewFilled allocates a buffer of the given size with every byte set to v.
func NewFilled(size int, v byte) *Buffer {
	b := New(size)
	for i := range b.buf {
		b.buf[i] = v
	}
	return b
}

// FromBytes creates a buffer holding a copy of b.
func FromBytes(b []byte) *Buffer {
	return &Buffer{buf: common.CopyBytes(b)}
}

// Wrap creates a buffer over b without copying it.
// The caller hands ownership of b to the buffer.
func Wrap(b []byte) *Buffer {
	return &Buffer{buf: b}
}

// FromText creates a buffer from Latin-1 text, one byte per character.
func FromText(s string) (*Buffer, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		c, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			return nil, ErrNotLatin1
		}
		out = append(out, c)
	}
	return &Buffer{buf: out}, nil
}

// FromHex creates a buffer from hex text. Both cases are accepted and a "0x" prefix is optional.
func FromHex(s string) (*Buffer, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	} else {
		s = "0x" + s[2:]
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, err
	}
	return &Buffer{buf: b}, nil
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Bytes returns the view of the buffer. It shares memory with the buffer.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// SetBytes replaces the content of the buffer with v, taking ownership of it.
func (b *Buffer) SetBytes(v []byte) {
	b.buf = v
}

// Clear drops the content of the buffer.
func (b *Buffer) Clear() {
	b.buf = []byte{}
}

// Realloc changes the size of the buffer, keeping the common prefix byte-for-byte.
func (b *Buffer) Realloc(size int) {
	if size < 0 {
		size = 0
	}
	grown := make([]byte, size)
	copy(grown, b.buf)
	b.buf = grown
}

// span clamps [start, start+length) to the buffer. A negative length means "up to the end".
func (b *Buffer) span(start, length int) (int, int, error) {
	if start < 0 || start > len(b.buf) {
		return 0, 0, ErrStartOutOfRange
	}
	if length < 0 || start+length > len(b.buf) {
		length = len(b.buf) - start
	}
	return start, start + length, nil
}

// Copy returns an independent buffer holding length bytes starting at start.
// A negative length copies up to the end of the buffer.
func (b *Buffer) Copy(start, length int) (*Buffer, error) {
	from, to, err := b.span(start, length)
	if err != nil {
		return nil, err
	}
	return FromBytes(b.buf[from:to]), nil
}

// Slice returns an independent buffer holding the bytes of [start, end).
// A negative end means the end of the buffer.
func (b *Buffer) Slice(start, end int) (*Buffer, error) {
	if end < 0 {
		end = len(b.buf)
	}
	if end < start {
		end = start
	}
	return b.Copy(start, end-start)
}

// Append grows the buffer by the content of other.
func (b *Buffer) Append(other *Buffer) {
	b.buf = append(b.buf, other.buf...)
}

// Insert overwrites the buffer starting at start with at most length bytes of other.
// A negative length means "as much as fits". Returns false when start is past the last byte.
func (b *Buffer) Insert(other *Buffer, start, length int) bool {
	if start < 0 || start > len(b.buf)-1 {
		return false
	}
	if length < 0 || length > len(b.buf)-start {
		length = len(b.buf) - start
	}
	if length > len(other.buf) {
		length = len(other.buf)
	}
	copy(b.buf[start:start+length], other.buf[:length])
	return true
}

// Equal reports whether both buffers hold the same bytes.
func (b *Buffer) Equal(other *Buffer) bool {
	return bytes.Equal(b.buf, other.buf)
}

// Text renders [start, start+length) as Latin-1 text. A negative length means "up to the end".
func (b *Buffer) Text(start, length int) string {
	from, to, err := b.span(start, length)
	if err != nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(to - from)
	for _, c := range b.buf[from:to] {
		sb.WriteRune(charmap.ISO8859_1.DecodeByte(c))
	}
	return sb.String()
}

// Hex renders [start, start+length) as uppercase hex. A negative length means "up to the end".
func (b *Buffer) Hex(start, length int) string {
	from, to, err := b.span(start, length)
	if err != nil || from == to {
		return ""
	}
	return strings.ToUpper(hexutil.Encode(b.buf[from:to])[2:])
}

// String implements fmt.Stringer with the hex form of the whole buffer.
func (b *Buffer) String() string {
	return b.Hex(0, -1)
}
