package bits

// This package implements a right-aligned "Bit Buffer" and a sequential bit Reader/Writer over it.
//
// Layout:
// - Reading all bytes as one long bit string (most significant bit first), the trailing Len() bits are the value.
// - When Len() is not a multiple of 8 the leading bits of the first byte are padding.
//   Shift, slice and shrink keep the padding zeroed.
//
// Use Case:
// - Scanning bit-packed headers and flags for patterns (see package scan).
// - Extracting bit fields of arbitrary width from a parsed structure.

import (
	"errors"
	mbits "math/bits"
	"strings"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
)

var (
	// ErrShiftRange is raised when a shift amount lies outside [0, 8].
	ErrShiftRange = errors.New("bits: shift value is out of range [0, 8]")
	// ErrShiftTooLarge is raised when a shift would remove more bits than the buffer holds.
	ErrShiftTooLarge = errors.New("bits: shift value is larger than the number of bits")
	// ErrNotBitText is returned when bit text holds characters other than '0' and '1'.
	ErrNotBitText = errors.New("bits: text must contain only '0' and '1'")
)

// Buffer stores a run of bits right-aligned in a byte slice.
type Buffer struct {
	data  []byte
	count int // number of significant bits, never more than 8*len(data)
}

// byteText maps every byte to its 8-character bit text.
var byteText [256]string

func init() {
	var sb strings.Builder
	for i := range byteText {
		sb.Reset()
		for bit := 7; bit >= 0; bit-- {
			if i&(1<<bit) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		byteText[i] = sb.String()
	}
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{data: []byte{}}
}

// FromBytes returns a buffer holding a copy of b, every bit significant.
func FromBytes(b []byte) *Buffer {
	return WithCount(b, 8*len(b))
}

// WithCount returns a buffer holding a copy of b where only the trailing count bits are significant.
// A count outside [0, 8*len(b)] means every bit is significant.
func WithCount(b []byte, count int) *Buffer {
	if count < 0 || count > 8*len(b) {
		count = 8 * len(b)
	}
	data := make([]byte, len(b))
	copy(data, b)
	return &Buffer{data: data, count: count}
}

// FromText parses bit text such as "1011".
func FromText(s string) (*Buffer, error) {
	b := New()
	if err := b.SetString(s); err != nil {
		return nil, err
	}
	return b, nil
}

// FromUint32 returns a 32-bit buffer holding v.
func FromUint32(v uint32) *Buffer {
	return &Buffer{data: bigendian.Uint32ToBytes(v), count: 32}
}

// Len returns the number of significant bits.
func (b *Buffer) Len() int {
	return b.count
}

// Bytes returns the underlying bytes, padding included. It shares memory with the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Clear drops every bit.
func (b *Buffer) Clear() {
	b.data = []byte{}
	b.count = 0
}

// SetString replaces the content of the buffer with the bits of s.
func (b *Buffer) SetString(s string) error {
	data := make([]byte, (len(s)+7)>>3)
	pad := 8*len(data) - len(s)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			abs := pad + i
			data[abs>>3] |= 0x80 >> (abs & 7)
		case '0':
		default:
			return ErrNotBitText
		}
	}
	b.data = data
	b.count = len(s)
	return nil
}

// String renders the significant bits, most significant first.
func (b *Buffer) String() string {
	if b.count == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(8 * len(b.data))
	for _, c := range b.data {
		sb.WriteString(byteText[c])
	}
	s := sb.String()
	return s[len(s)-b.count:]
}

// Bit returns the i-th significant bit, counting from the most significant one.
func (b *Buffer) Bit(i int) uint {
	abs := 8*len(b.data) - b.count + i
	return uint(b.data[abs>>3]>>(7-abs&7)) & 1
}

// Equal reports whether both buffers hold the same significant bits.
func (b *Buffer) Equal(other *Buffer) bool {
	return b.count == other.count && b.String() == other.String()
}

// Append adds the bits of other after the bits of b.
func (b *Buffer) Append(other *Buffer) {
	w := NewWriter()
	w.WriteBuffer(b)
	w.WriteBuffer(other)
	*b = *w.Buffer()
}

// clearPadding zeroes every bit in front of the significant ones.
func (b *Buffer) clearPadding() {
	pad := 8*len(b.data) - b.count
	for i := 0; pad > 0; i++ {
		if pad >= 8 {
			b.data[i] = 0
			pad -= 8
			continue
		}
		b.data[i] &= 0xFF >> pad
		pad = 0
	}
}

// Shrink drops leading bytes that hold no significant bits.
func (b *Buffer) Shrink() {
	b.clearPadding()
	need := (b.count + 7) >> 3
	if len(b.data) > need {
		data := make([]byte, need)
		copy(data, b.data[len(b.data)-need:])
		b.data = data
	}
}

// ShiftRight shifts the whole value right by n bits, dropping its n least significant bits.
// With shrink set, leading bytes left without significant bits are released.
func (b *Buffer) ShiftRight(n int, shrink bool) {
	if len(b.data) == 0 {
		return
	}
	if n < 0 || n > 8 {
		panic(ErrShiftRange)
	}
	if n > b.count {
		panic(ErrShiftTooLarge)
	}
	b.clearPadding()

	mask := byte(0xFF) >> (8 - n)
	last := len(b.data) - 1
	b.data[last] >>= n
	for i := last - 1; i >= 0; i-- {
		// each byte absorbs the bits shifted out of its predecessor
		b.data[i+1] |= (b.data[i] & mask) << (8 - n)
		b.data[i] >>= n
	}

	b.count -= n
	if b.count == 0 {
		b.Clear()
		return
	}
	if shrink {
		b.Shrink()
	}
}

// ShiftLeft drops the n most significant bits of the value.
func (b *Buffer) ShiftLeft(n int) {
	if len(b.data) == 0 {
		return
	}
	if n < 0 || n > 8 {
		panic(ErrShiftRange)
	}
	if n > b.count {
		panic(ErrShiftTooLarge)
	}
	b.Shrink()

	// significant bits in the first byte
	s := b.count & 7
	if s == 0 {
		s = 8
	}
	if n < s {
		b.data[0] &= 0xFF >> (8 - s + n)
	} else {
		b.data = b.data[1:]
		if r := n - s; r > 0 {
			b.data[0] &= 0xFF >> r
		}
	}

	b.count -= n
	if b.count == 0 {
		b.Clear()
	}
}

// Slice returns the bits of [start, end) as a new buffer.
// Invalid bounds produce an empty buffer.
func (b *Buffer) Slice(start, end int) *Buffer {
	if start < 0 || end > b.count || start >= end {
		return New()
	}

	pad := 8*len(b.data) - b.count
	first := start + pad
	last := end + pad - 1

	data := make([]byte, last>>3-first>>3+1)
	copy(data, b.data[first>>3:last>>3+1])
	data[0] &= 0xFF >> (first & 7)

	res := &Buffer{data: data, count: 8 * len(data)}
	res.ShiftRight(7-last&7, false)
	res.count = end - start
	res.Shrink()
	return res
}

// Copy returns length bits starting at start as a new buffer.
// A negative length copies up to the end.
func (b *Buffer) Copy(start, length int) *Buffer {
	if length < 0 {
		length = b.count - start
	}
	return b.Slice(start, start+length)
}

// ReverseBytes reverses the bit order inside every byte and re-aligns the partial leading byte.
func (b *Buffer) ReverseBytes() {
	for i, c := range b.data {
		b.data[i] = mbits.Reverse8(c)
	}
	if rem := b.count & 7; rem != 0 {
		used := (b.count + 7) >> 3
		b.data[len(b.data)-used] >>= 8 - rem
	}
}

// ReverseValue reverses the whole bit sequence end to end.
func (b *Buffer) ReverseValue() {
	s := []byte(b.String())
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	// s only holds '0' and '1', produced by String
	_ = b.SetString(string(s))
}

// NumberValue interprets the buffer as an unsigned big-endian integer.
// It returns false when the significant bits span more than 4 bytes.
func (b *Buffer) NumberValue() (uint32, bool) {
	used := (b.count + 7) >> 3
	if used > 4 {
		return 0, false
	}
	var v uint32
	for _, c := range b.data[len(b.data)-used:] {
		v = v<<8 | uint32(c)
	}
	if b.count < 32 {
		v &= 1<<b.count - 1
	}
	return v, true
}
