package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-binscan/scan"
	"github.com/rony4d/go-binscan/utils/bits"
)

func bitCursor(t testing.TB, s string, backward bool) *BitCursor {
	t.Helper()
	buf, err := bits.FromText(s)
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.Backward = backward
	c, err := NewBitCursor(buf, cfg)
	require.NoError(t, err)
	return c
}

func bt(t testing.TB, s string) *bits.Buffer {
	t.Helper()
	buf, err := bits.FromText(s)
	require.NoError(t, err)
	return buf
}

func TestNewBitCursor(t *testing.T) {
	_, err := NewBitCursor(bt(t, "1010"), Config{Start: 5, Length: scan.Default})
	assert.ErrorIs(t, err, ErrWindowRange)

	c, err := NewBitCursor(bt(t, "1010"), Config{Start: 1, Length: 2})
	require.NoError(t, err)
	assert.Equal(t, "01", c.String())
}

func TestBitCursor_Fields(t *testing.T) {
	c := bitCursor(t, "101011011101111011111", false)

	assert.Equal(t, "10101", c.GetBitsString(5))
	assert.Equal(t, 5, c.Start())

	v, ok := c.GetBitsValue(3)
	assert.True(t, ok)
	assert.Equal(t, uint32(5), v)

	v, ok = c.GetBitsReversedValue(4)
	assert.True(t, ok)
	assert.Equal(t, uint32(11), v)

	assert.Equal(t, 12, c.Start())
	assert.Equal(t, 9, c.Length())
	assert.Equal(t, "111011111", c.String())

	_, ok = c.GetBitsValue(33)
	assert.False(t, ok)
	assert.Equal(t, 12, c.Start())

	// fields are cut short at the window end
	assert.Equal(t, "111011111", c.GetBitsString(40))
	assert.Equal(t, 0, c.GetBits(1).Len())
	assert.Equal(t, 0, c.GetBits(0).Len())
}

func TestBitCursor_Backward(t *testing.T) {
	c := bitCursor(t, "10110", true)

	assert.Equal(t, "10", c.GetBitsString(2))
	assert.Equal(t, 3, c.Start())
	assert.Equal(t, "101", c.String())

	v, ok := c.GetBitsValue(3)
	assert.True(t, ok)
	assert.Equal(t, uint32(5), v)
	assert.Equal(t, 0, c.Start())
	assert.Equal(t, 0, c.GetBits(1).Len())
}

func TestBitCursor_Search(t *testing.T) {
	c := bitCursor(t, "101011011101111011111", false)
	p := bt(t, "111")

	assert.Equal(t, 10, c.FindPattern(p, AnyGap))
	assert.Equal(t, 11, c.Length())
	assert.Equal(t, 14, c.FindPattern(p, AnyGap))
	assert.Equal(t, -1, c.FindPattern(p, 0))
	assert.Equal(t, 14, c.Start())

	n := bitCursor(t, "101011011101111001111", false)
	res := n.FindFirstNotIn([]*bits.Buffer{bt(t, "101"), bt(t, "00")}, AnyGap)
	assert.Equal(t, "01", res.Value.String())
	assert.Equal(t, 8, n.Start())

	s := bitCursor(t, "000011101100", true)
	seq := s.FindFirstSequence([]*bits.Buffer{bt(t, "1")}, AnyGap, AnyGap)
	assert.Equal(t, "11", seq.Value.String())
	assert.Equal(t, 8, s.Start())
}

func TestBitCursor_AppendBits(t *testing.T) {
	c, err := NewBitCursor(bits.New(), DefaultConfig())
	require.NoError(t, err)

	c.AppendBits(3, 5)
	c.AppendBits(5, 1)
	assert.Equal(t, "10100001", c.Buffer().String())
	assert.Equal(t, 8, c.Start())
	assert.Equal(t, 0, c.Length())

	c.Reset(Snapshot{Start: 0, Length: 8})
	c.AppendBits(2, 0)
	assert.Equal(t, "00100001", c.Buffer().String())
	assert.Equal(t, 2, c.Start())
	assert.Equal(t, 6, c.Length())

	// overwriting past the end grows the buffer
	c.Advance(7)
	c.AppendBits(4, 0xF)
	assert.Equal(t, "00100001111", c.Buffer().String())
	assert.Equal(t, 11, c.Start())
	assert.Equal(t, 0, c.Length())
}
