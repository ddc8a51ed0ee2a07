package seq

import (
	"github.com/rony4d/go-binscan/scan"
	"github.com/rony4d/go-binscan/utils/bits"
)

// BitCursor is a Cursor over a bit buffer with bit-field access.
type BitCursor struct {
	*Cursor[*bits.Buffer, *bits.Buffer]

	buf *bits.Buffer
}

// NewBitCursor creates a cursor over buf. The buffer is shared, not copied.
func NewBitCursor(buf *bits.Buffer, cfg Config) (*BitCursor, error) {
	c, err := newCursor[*bits.Buffer, *bits.Buffer](scan.NewBitMatcher(buf), bits.New, cfg)
	if err != nil {
		return nil, err
	}
	return &BitCursor{Cursor: c, buf: buf}, nil
}

// Buffer returns the underlying buffer.
func (c *BitCursor) Buffer() *bits.Buffer {
	return c.buf
}

// GetBits consumes up to n bits, fewer when the window is shorter.
// The bits keep their buffer order in both directions.
func (c *BitCursor) GetBits(n int) *bits.Buffer {
	if n <= 0 {
		return bits.New()
	}
	if n > c.length {
		n = c.length
	}
	if c.backward {
		out := c.buf.Slice(c.start-n, c.start)
		c.Advance(c.start - out.Len())
		return out
	}
	out := c.buf.Copy(c.start, n)
	c.Advance(c.start + out.Len())
	return out
}

// GetBitsString consumes up to n bits and returns their text.
func (c *BitCursor) GetBitsString(n int) string {
	return c.GetBits(n).String()
}

// GetBitsValue consumes up to n bits and returns them as an unsigned integer.
// It returns false for more than 32 bits.
func (c *BitCursor) GetBitsValue(n int) (uint32, bool) {
	if n > 32 {
		return 0, false
	}
	field := c.GetBits(n)
	return uint32(bits.NewReader(field).Read(field.Len())), true
}

// GetBitsReversedValue consumes up to n bits, reverses their order and returns
// them as an unsigned integer. Fields stored least significant bit first decode this way.
func (c *BitCursor) GetBitsReversedValue(n int) (uint32, bool) {
	if n > 32 {
		return 0, false
	}
	field := c.GetBits(n)
	field.ReverseValue()
	return field.NumberValue()
}

// AppendBits writes the low n bits of v at the cursor, overwriting what is there,
// and moves past them. The buffer grows when the field runs past its end.
func (c *BitCursor) AppendBits(n int, v uint32) {
	if n <= 0 {
		return
	}
	size := c.buf.Len()
	at := c.start
	end := at + n
	if end > size {
		end = size
	}

	w := bits.NewWriter()
	w.WriteBuffer(c.buf.Slice(0, at))
	w.Write(n, uint(v))
	w.WriteBuffer(c.buf.Slice(end, size))
	*c.buf = *w.Buffer()

	if grown := c.buf.Len() - size; grown > 0 && !c.backward {
		c.length += grown
	}
	c.Advance(at + n)
}

// String renders the bits left in the window.
func (c *BitCursor) String() string {
	if c.backward {
		return c.buf.Slice(c.start-c.length, c.start).String()
	}
	return c.buf.Copy(c.start, c.length).String()
}
