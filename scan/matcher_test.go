package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-binscan/utils/fast"
)

const xrefTail = "startxref123a\n1908\n%%EOF"

func text(t testing.TB, s string) *fast.Buffer {
	t.Helper()
	b, err := fast.FromText(s)
	require.NoError(t, err)
	return b
}

func texts(t testing.TB, ss ...string) []*fast.Buffer {
	t.Helper()
	out := make([]*fast.Buffer, len(ss))
	for i, s := range ss {
		out[i] = text(t, s)
	}
	return out
}

func digits(t testing.TB) []*fast.Buffer {
	return texts(t, "0", "1", "2", "3", "4", "5", "6", "7", "8", "9")
}

func sample() *fast.Buffer {
	return fast.FromBytes([]byte{0x20, 0x20, 0x21, 0x22, 0x23, 0x25})
}

func b(v ...byte) *fast.Buffer {
	return fast.FromBytes(v)
}

func TestWindow_Resolve(t *testing.T) {
	tests := []struct {
		name          string
		w             Window
		start, length int
	}{
		{"all", All(), 0, 10},
		{"all backward", AllBackward(), 10, 10},
		{"forward tail", Forward(4, Default), 4, 6},
		{"forward clamped", Forward(4, 100), 4, 6},
		{"start clamped", Forward(20, 3), 10, 0},
		{"backward head", Backward(4, Default), 4, 4},
		{"backward clamped", Backward(4, 7), 4, 4},
		{"backward exact", Backward(8, 3), 8, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, length := tt.w.resolve(10)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.length, length)
		})
	}

	start, length := Backward(8, 3).normal(10)
	assert.Equal(t, 5, start)
	assert.Equal(t, 3, length)
}

func TestMatcher_FindPattern(t *testing.T) {
	m := NewMatcher(sample())

	assert.Equal(t, 1, m.FindPattern(b(0x20), All()))
	assert.Equal(t, 5, m.FindPattern(b(0x21, 0x22, 0x23), All()))
	assert.Equal(t, 2, m.FindPattern(b(0x20), Forward(1, Default)))
	assert.Equal(t, -1, m.FindPattern(b(0x20), Forward(2, Default)))

	// backward reports the position before the match
	assert.Equal(t, 1, m.FindPattern(b(0x20), AllBackward()))
	assert.Equal(t, 3, m.FindPattern(b(0x22, 0x23), AllBackward()))
	assert.Equal(t, -1, m.FindPattern(b(0x25), Backward(5, Default)))

	// a pattern longer than the window never matches
	assert.Equal(t, -1, m.FindPattern(b(0x21, 0x22, 0x23), Forward(2, 2)))
	assert.Equal(t, -1, m.FindPattern(b(), All()))
}

func TestMatcher_FindFirstIn(t *testing.T) {
	m := NewMatcher(sample())

	assert.Equal(t, FirstIn{ID: 0, Position: 1, Length: 1}, m.FindFirstIn([]*fast.Buffer{b(0x20), b(0x23)}, All()))
	assert.Equal(t, FirstIn{ID: 1, Position: 5, Length: 1}, m.FindFirstIn([]*fast.Buffer{b(0x20), b(0x23)}, Forward(2, Default)))

	// on a tie the later pattern wins
	assert.Equal(t, FirstIn{ID: 1, Position: 2, Length: 2}, m.FindFirstIn([]*fast.Buffer{b(0x20), b(0x20, 0x20)}, All()))
	assert.Equal(t, FirstIn{ID: 1, Position: 4, Length: 2}, m.FindFirstIn([]*fast.Buffer{b(0x25), b(0x23, 0x25)}, AllBackward()))

	// not found keeps the window edge so callers can continue from it
	assert.Equal(t, FirstIn{ID: -1, Position: 6}, m.FindFirstIn([]*fast.Buffer{b(0x99)}, All()))
	assert.Equal(t, FirstIn{ID: -1, Position: 0}, m.FindFirstIn([]*fast.Buffer{b(0x99)}, AllBackward()))
	assert.Equal(t, FirstIn{ID: -1, Position: 4}, m.FindFirstIn(nil, Forward(1, 3)))
}

func TestMatcher_FindAllIn(t *testing.T) {
	m := NewMatcher(text(t, xrefTail))

	found := m.FindAllIn(digits(t), All())
	require.Len(t, found, 7)

	positions := make([]int, len(found))
	ids := make([]int, len(found))
	for i, f := range found {
		positions[i] = f.Position
		ids[i] = f.ID
	}
	assert.Equal(t, []int{10, 11, 12, 15, 16, 17, 18}, positions)
	assert.Equal(t, []int{1, 2, 3, 1, 9, 0, 8}, ids)

	assert.Equal(t, []FirstIn{{ID: 1, Position: 15, Length: 1}, {ID: 9, Position: 16, Length: 1}},
		m.FindAllIn(digits(t), Forward(13, 3)))
	assert.Empty(t, m.FindAllIn(digits(t), Forward(0, 9)))
}

func TestMatcher_FindAllPatternIn(t *testing.T) {
	m := NewMatcher(text(t, "<<[1[1][1]]>>"))

	found, ok := m.FindAllPatternIn(text(t, "["), All())
	assert.True(t, ok)
	assert.Equal(t, []int{3, 5, 8}, found)

	// overlapping occurrences are not reported
	found, ok = NewMatcher(text(t, "aaaa")).FindAllPatternIn(text(t, "aa"), All())
	assert.True(t, ok)
	assert.Equal(t, []int{2, 4}, found)

	// zero matches and "cannot fit" are different outcomes
	found, ok = m.FindAllPatternIn(text(t, "x"), All())
	assert.True(t, ok)
	assert.Empty(t, found)

	_, ok = m.FindAllPatternIn(text(t, "<<["), Forward(0, 2))
	assert.False(t, ok)
}

func TestMatcher_FindFirstNotIn(t *testing.T) {
	m := NewMatcher(sample())

	res := m.FindFirstNotIn([]*fast.Buffer{b(0x20), b(0x23)}, All())
	assert.Equal(t, "2122", res.Value.Hex(0, -1))
	assert.Equal(t, FirstIn{ID: 0, Position: 2, Length: 1}, res.Left)
	assert.Equal(t, FirstIn{ID: 1, Position: 5, Length: 1}, res.Right)

	res = m.FindFirstNotIn([]*fast.Buffer{b(0x20)}, All())
	assert.Equal(t, "21222325", res.Value.Hex(0, -1))
	assert.False(t, res.Right.Found())
	assert.Equal(t, 6, res.Right.Position)

	res = m.FindFirstNotIn([]*fast.Buffer{b(0x20), b(0x23), b(0x25)}, All())
	assert.Equal(t, "2122", res.Value.Hex(0, -1))

	res = m.FindFirstNotIn([]*fast.Buffer{b(0x23), b(0x25)}, Forward(3, 3))
	assert.Equal(t, "22", res.Value.Hex(0, -1))
	assert.Equal(t, 5, res.Right.Position)

	t.Run("backward", func(t *testing.T) {
		res := m.FindFirstNotIn([]*fast.Buffer{b(0x25), b(0x23)}, AllBackward())
		assert.Equal(t, "20202122", res.Value.Hex(0, -1))
		// left is always the boundary nearer the window start
		assert.False(t, res.Left.Found())
		assert.Equal(t, FirstIn{ID: 1, Position: 4, Length: 1}, res.Right)
	})

	t.Run("only separators", func(t *testing.T) {
		res := NewMatcher(b(0x20, 0x20)).FindFirstNotIn([]*fast.Buffer{b(0x20)}, All())
		assert.Equal(t, 0, res.Value.Len())
		assert.Equal(t, 2, res.Right.Position)
	})
}

func TestMatcher_FindAllNotIn(t *testing.T) {
	m := NewMatcher(text(t, xrefTail))

	found := m.FindAllNotIn(digits(t), All())
	require.Len(t, found, 3)
	assert.Equal(t, "737461727478726566", found[0].Value.Hex(0, -1))
	assert.Equal(t, "610A", found[1].Value.Hex(0, -1))
	assert.Equal(t, "0A2525454F46", found[2].Value.Hex(0, -1))
	assert.False(t, found[2].Right.Found())

	words := NewMatcher(text(t, "  ab  cd ")).FindAllNotIn(texts(t, " "), All())
	require.Len(t, words, 2)
	assert.Equal(t, "ab", words[0].Value.Text(0, -1))
	assert.Equal(t, "cd", words[1].Value.Text(0, -1))
}

func TestMatcher_Sequences(t *testing.T) {
	m := NewMatcher(text(t, xrefTail))

	all := m.FindAllSequences(digits(t), All())
	require.Len(t, all, 2)
	assert.Equal(t, "123", all[0].Value.Text(0, -1))
	assert.Equal(t, 12, all[0].Position)
	assert.Equal(t, 3, all[0].Length)
	assert.Equal(t, "1908", all[1].Value.Text(0, -1))
	assert.Equal(t, 18, all[1].Position)

	last := m.FindFirstSequence(digits(t), AllBackward())
	assert.Equal(t, "1908", last.Value.Text(0, -1))
	assert.Equal(t, 14, last.Position)

	none := m.FindFirstSequence(digits(t), Forward(19, Default))
	assert.Equal(t, -1, none.Position)
	assert.Equal(t, 0, none.Value.Len())

	signed := append(digits(t), texts(t, "-", "+")...)
	values := NewMatcher(text(t, "0 -19 +0 65535 n")).FindAllSequences(signed, All())
	got := make([]string, len(values))
	for i, v := range values {
		got[i] = v.Value.Text(0, -1)
	}
	assert.Equal(t, []string{"0", "-19", "+0", "65535"}, got)
}

func TestMatcher_Skip(t *testing.T) {
	m := NewMatcher(text(t, xrefTail))

	// nothing to skip leaves the position unchanged
	assert.Equal(t, 0, m.SkipPatterns(digits(t), All()))
	assert.Equal(t, 12, m.SkipPatterns(digits(t), Forward(9, Default)))
	assert.Equal(t, 11, m.SkipPatterns(digits(t), Forward(9, 2)))
	assert.Equal(t, 14, m.SkipPatterns(digits(t), Backward(18, Default)))

	assert.Equal(t, 9, m.SkipNotPatterns(digits(t), All()))
	assert.Equal(t, 18, m.SkipNotPatterns(digits(t), AllBackward()))
	assert.Equal(t, -1, m.SkipNotPatterns(digits(t), Forward(0, 9)))
	assert.Equal(t, -1, m.SkipNotPatterns(digits(t), Forward(18, Default)))

	// patterns may interleave and repeat
	ws := NewMatcher(text(t, " \r\n \n x"))
	assert.Equal(t, 6, ws.SkipPatterns(texts(t, "\r\n", " ", "\n"), All()))
}

func TestMatcher_Paired(t *testing.T) {
	m := NewMatcher(text(t, "<<[1[1][1]]>>"))

	assert.Equal(t, []Pair{{3, 11}, {5, 7}, {8, 10}}, m.FindPairedPatterns(text(t, "["), text(t, "]"), All()))
	assert.Empty(t, m.FindPairedPatterns(text(t, "["), text(t, "["), All()))
	assert.Empty(t, m.FindPairedPatterns(text(t, "("), text(t, ")"), All()))

	arrays := m.FindPairedArrays(texts(t, "[", "<<"), texts(t, "]", ">>"), All())
	assert.Equal(t, []PairIn{
		{Left: FirstIn{ID: 1, Position: 2, Length: 2}, Right: FirstIn{ID: 1, Position: 13, Length: 2}},
		{Left: FirstIn{ID: 0, Position: 3, Length: 1}, Right: FirstIn{ID: 0, Position: 11, Length: 1}},
		{Left: FirstIn{ID: 0, Position: 5, Length: 1}, Right: FirstIn{ID: 0, Position: 7, Length: 1}},
		{Left: FirstIn{ID: 0, Position: 8, Length: 1}, Right: FirstIn{ID: 0, Position: 10, Length: 1}},
	}, arrays)

	t.Run("shared end", func(t *testing.T) {
		// boundaries ending at one position cancel out
		s := NewMatcher(text(t, "ab"))
		assert.Empty(t, s.FindPairedPatterns(text(t, "ab"), text(t, "b"), All()))
	})
}

func TestMatcher_Replace(t *testing.T) {
	buf := text(t, "<<[1[1][1]]>>")
	m := NewMatcher(buf)

	rep := m.ReplacePattern(text(t, "<<["), text(t, "<"), All())
	assert.True(t, rep.Succeeded)
	assert.Equal(t, []int{3}, rep.SearchPositions)
	assert.Equal(t, []int{0}, rep.ReplacePositions)

	rep = m.ReplacePattern(text(t, "]>>"), text(t, ">"), All())
	assert.True(t, rep.Succeeded)
	assert.Equal(t, []int{11}, rep.SearchPositions)
	assert.Equal(t, []int{8}, rep.ReplacePositions)
	assert.Equal(t, "<1[1][1]>", buf.Text(0, -1))

	rep = m.ReplacePattern(text(t, "%%"), text(t, "#"), All())
	assert.False(t, rep.Succeeded)
	assert.Equal(t, "<1[1][1]>", buf.Text(0, -1))

	t.Run("growing", func(t *testing.T) {
		g := text(t, "a,b,c")
		rep := NewMatcher(g).ReplacePattern(text(t, ","), text(t, ", "), All())
		assert.Equal(t, []int{1, 4}, rep.ReplacePositions)
		assert.Equal(t, "a, b, c", g.Text(0, -1))
	})

	t.Run("window", func(t *testing.T) {
		g := text(t, "a,b,c,d")
		NewMatcher(g).ReplacePattern(text(t, ","), text(t, ""), Forward(2, 3))
		assert.Equal(t, "a,bc,d", g.Text(0, -1))
	})

	t.Run("precomputed", func(t *testing.T) {
		g := text(t, "x=1;y=2")
		gm := NewMatcher(g)
		found, ok := gm.FindAllPatternIn(text(t, "="), All())
		require.True(t, ok)
		rep := gm.ReplaceFound(text(t, "="), text(t, ":="), found)
		assert.True(t, rep.Succeeded)
		assert.Equal(t, "x:=1;y:=2", g.Text(0, -1))
	})
}
