package seq

import (
	"github.com/rony4d/go-binscan/scan"
	"github.com/rony4d/go-binscan/utils/fast"
)

// AppendSlack is added on top of the needed size when an append grows the buffer.
const AppendSlack = 1000

// ByteCursor is a Cursor over a byte buffer with sequential integer access.
type ByteCursor struct {
	*Cursor[*fast.Buffer, *fast.Buffer]

	buf         *fast.Buffer
	appendBlock int
}

// NewByteCursor creates a cursor over buf. The buffer is shared, not copied.
func NewByteCursor(buf *fast.Buffer, cfg Config) (*ByteCursor, error) {
	c, err := newCursor[*fast.Buffer, *fast.Buffer](scan.NewMatcher(buf), emptyBytes, cfg)
	if err != nil {
		return nil, err
	}
	block := cfg.AppendBlock
	if block < 0 {
		block = 0
	}
	return &ByteCursor{Cursor: c, buf: buf, appendBlock: block}, nil
}

func emptyBytes() *fast.Buffer {
	return fast.New(0)
}

// Buffer returns the underlying buffer.
func (c *ByteCursor) Buffer() *fast.Buffer {
	return c.buf
}

// Written returns the bytes in front of the cursor. After a series of appends on a
// forward cursor that is the produced output, without the unused growth block.
func (c *ByteCursor) Written() []byte {
	return c.buf.Bytes()[:c.start]
}

// beforeAppend makes room for size bytes at the cursor.
func (c *ByteCursor) beforeAppend(size int) {
	if c.start+size <= c.buf.Len() {
		return
	}
	if size > c.appendBlock {
		c.appendBlock = size + AppendSlack
	}
	c.buf.Realloc(c.buf.Len() + c.appendBlock)
	if !c.backward {
		c.length += c.appendBlock
	}
	logger.Trace("Grown cursor buffer", "size", c.buf.Len(), "block", c.appendBlock)
}

// AppendBytes writes v at the cursor and moves past it.
func (c *ByteCursor) AppendBytes(v []byte) {
	c.beforeAppend(len(v))
	copy(c.buf.Bytes()[c.start:], v)
	c.Advance(c.start + len(v))
}

// Append writes the content of other at the cursor.
func (c *ByteCursor) Append(other *fast.Buffer) {
	c.AppendBytes(other.Bytes())
}

// AppendByte writes a single byte at the cursor.
func (c *ByteCursor) AppendByte(v byte) {
	c.AppendBytes([]byte{v})
}

func (c *ByteCursor) appendWith(size int, write func(w *fast.Writer)) {
	w := fast.NewWriter(make([]byte, 0, size))
	write(w)
	c.AppendBytes(w.Bytes())
}

// AppendUint16 writes v big-endian at the cursor.
func (c *ByteCursor) AppendUint16(v uint16) {
	c.appendWith(2, func(w *fast.Writer) { w.WriteUint16(v) })
}

// AppendUint24 writes the low 24 bits of v big-endian at the cursor.
func (c *ByteCursor) AppendUint24(v uint32) {
	c.appendWith(3, func(w *fast.Writer) { w.WriteUint24(v) })
}

// AppendUint32 writes v big-endian at the cursor.
func (c *ByteCursor) AppendUint32(v uint32) {
	c.appendWith(4, func(w *fast.Writer) { w.WriteUint32(v) })
}

// AppendInt16 writes v big-endian at the cursor.
func (c *ByteCursor) AppendInt16(v int16) {
	c.appendWith(2, func(w *fast.Writer) { w.WriteInt16(v) })
}

// AppendInt32 writes v big-endian at the cursor.
func (c *ByteCursor) AppendInt32(v int32) {
	c.appendWith(4, func(w *fast.Writer) { w.WriteInt32(v) })
}

// GetBlock returns up to size bytes at the cursor, fewer when the window is shorter.
// A backward cursor reads the bytes in front of it in reverse order.
// With advance set the cursor moves past the block.
func (c *ByteCursor) GetBlock(size int, advance bool) []byte {
	if c.length <= 0 || size <= 0 {
		return []byte{}
	}
	if size > c.length {
		size = c.length
	}

	out := make([]byte, size)
	if c.backward {
		src := c.buf.Bytes()[c.start-size : c.start]
		for i, v := range src {
			out[size-1-i] = v
		}
	} else {
		copy(out, c.buf.Bytes()[c.start:c.start+size])
	}

	if advance {
		if c.backward {
			c.Advance(c.start - size)
		} else {
			c.Advance(c.start + size)
		}
	}
	return out
}

// fixed reads an exact-width block; short reads yield nil.
func (c *ByteCursor) fixed(size int, advance bool) *fast.Reader {
	block := c.GetBlock(size, advance)
	if len(block) < size {
		return nil
	}
	return fast.NewReader(block)
}

// GetUint16 reads a big-endian 16-bit value, 0 when fewer than 2 bytes remain.
func (c *ByteCursor) GetUint16(advance bool) uint16 {
	if r := c.fixed(2, advance); r != nil {
		return r.Uint16()
	}
	return 0
}

// GetUint24 reads a big-endian 24-bit value, 0 when fewer than 3 bytes remain.
func (c *ByteCursor) GetUint24(advance bool) uint32 {
	if r := c.fixed(3, advance); r != nil {
		return r.Uint24()
	}
	return 0
}

// GetUint32 reads a big-endian 32-bit value, 0 when fewer than 4 bytes remain.
func (c *ByteCursor) GetUint32(advance bool) uint32 {
	if r := c.fixed(4, advance); r != nil {
		return r.Uint32()
	}
	return 0
}

// GetInt16 reads a big-endian signed 16-bit value.
func (c *ByteCursor) GetInt16(advance bool) int16 {
	if r := c.fixed(2, advance); r != nil {
		return r.Int16()
	}
	return 0
}

// GetInt32 reads a big-endian signed 32-bit value.
func (c *ByteCursor) GetInt32(advance bool) int32 {
	if r := c.fixed(4, advance); r != nil {
		return r.Int32()
	}
	return 0
}
