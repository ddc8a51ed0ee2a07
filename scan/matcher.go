package scan

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/rony4d/go-binscan/utils/fast"
)

var logger = log.New("module", "scan")

// Matcher runs pattern searches over a byte buffer.
// It keeps no state besides the buffer, so one Matcher may serve any number of windows.
type Matcher struct {
	buf *fast.Buffer
}

// NewMatcher creates a Matcher over buf. The buffer is shared, not copied.
func NewMatcher(buf *fast.Buffer) *Matcher {
	return &Matcher{buf: buf}
}

// Buffer returns the scanned buffer.
func (m *Matcher) Buffer() *fast.Buffer {
	return m.buf
}

// Len returns the number of bytes in the scanned buffer.
func (m *Matcher) Len() int {
	return m.buf.Len()
}

// PatternLen returns the width of a pattern in bytes.
func (m *Matcher) PatternLen(p *fast.Buffer) int {
	return p.Len()
}

func (m *Matcher) value(s Span) *fast.Buffer {
	return fast.FromBytes(m.buf.Bytes()[s.Start:s.End])
}

func raw(ps []*fast.Buffer) [][]byte {
	out := make([][]byte, len(ps))
	for i, p := range ps {
		out[i] = p.Bytes()
	}
	return out
}

// FindPattern returns the position after (forward) or before (backward) the first match of p.
func (m *Matcher) FindPattern(p *fast.Buffer, w Window) int {
	start, length := w.resolve(m.Len())
	return findPattern(m.buf.Bytes(), p.Bytes(), start, length, w.Backward)
}

// FindFirstIn returns the match of any pattern nearest the front of the window.
func (m *Matcher) FindFirstIn(ps []*fast.Buffer, w Window) FirstIn {
	start, length := w.resolve(m.Len())
	return findFirstIn(m.buf.Bytes(), raw(ps), start, length, w.Backward)
}

// FindAllIn lists every match of any pattern, left to right.
func (m *Matcher) FindAllIn(ps []*fast.Buffer, w Window) []FirstIn {
	start, length := w.normal(m.Len())
	return findAllIn(m.buf.Bytes(), raw(ps), start, length)
}

// FindAllPatternIn lists the end positions of the non-overlapping occurrences of p.
// The boolean is false when p is longer than the window.
func (m *Matcher) FindAllPatternIn(p *fast.Buffer, w Window) ([]int, bool) {
	start, length := w.normal(m.Len())
	return findAllPatternIn(m.buf.Bytes(), p.Bytes(), start, length)
}

// FindFirstNotIn captures the first run not made of patterns.
func (m *Matcher) FindFirstNotIn(ps []*fast.Buffer, w Window) NotIn[*fast.Buffer] {
	start, length := w.resolve(m.Len())
	return mapNotIn(findFirstNotIn(m.buf.Bytes(), raw(ps), start, length, w.Backward), m.value)
}

// FindAllNotIn splits the window into runs separated by patterns.
func (m *Matcher) FindAllNotIn(ps []*fast.Buffer, w Window) []NotIn[*fast.Buffer] {
	start, length := w.normal(m.Len())
	found := findAllNotIn(m.buf.Bytes(), raw(ps), start, length)
	out := make([]NotIn[*fast.Buffer], len(found))
	for i, f := range found {
		out[i] = mapNotIn(f, m.value)
	}
	return out
}

// FindFirstSequence captures the first run made only of patterns.
func (m *Matcher) FindFirstSequence(ps []*fast.Buffer, w Window) Sequence[*fast.Buffer] {
	start, length := w.resolve(m.Len())
	return mapSequence(findFirstSequence(m.buf.Bytes(), raw(ps), start, length, w.Backward), m.value)
}

// FindAllSequences captures every run made only of patterns, left to right.
func (m *Matcher) FindAllSequences(ps []*fast.Buffer, w Window) []Sequence[*fast.Buffer] {
	start, length := w.normal(m.Len())
	found := findAllSequences(m.buf.Bytes(), raw(ps), start, length)
	out := make([]Sequence[*fast.Buffer], len(found))
	for i, f := range found {
		out[i] = mapSequence(f, m.value)
	}
	return out
}

// FindPairedPatterns pairs occurrences of a left and a right delimiter.
func (m *Matcher) FindPairedPatterns(l, r *fast.Buffer, w Window) []Pair {
	start, length := w.normal(m.Len())
	return findPairedPatterns(m.buf.Bytes(), l.Bytes(), r.Bytes(), start, length)
}

// FindPairedArrays pairs occurrences of alternative left and right delimiters.
func (m *Matcher) FindPairedArrays(ls, rs []*fast.Buffer, w Window) []PairIn {
	start, length := w.normal(m.Len())
	return findPairedArrays(m.buf.Bytes(), raw(ls), raw(rs), start, length)
}

// ReplacePattern swaps every occurrence of search inside the window for repl.
// The buffer is rebuilt in place; nothing changes when search does not occur.
func (m *Matcher) ReplacePattern(search, repl *fast.Buffer, w Window) Replacement {
	found, _ := m.FindAllPatternIn(search, w)
	return m.ReplaceFound(search, repl, found)
}

// ReplaceFound swaps the occurrences of search ending at the given positions for repl.
// The positions must come from FindAllPatternIn over the current content.
func (m *Matcher) ReplaceFound(search, repl *fast.Buffer, found []int) Replacement {
	out, rep := replaceAll(m.buf.Bytes(), search.Bytes(), repl.Bytes(), found)
	if !rep.Succeeded {
		return rep
	}
	m.buf.SetBytes(out)
	logger.Trace("Replaced byte pattern", "occurrences", len(found), "size", len(out))
	return rep
}

// SkipPatterns consumes patterns while any of them matches at the current position.
func (m *Matcher) SkipPatterns(ps []*fast.Buffer, w Window) int {
	start, length := w.resolve(m.Len())
	return skipPatterns(m.buf.Bytes(), raw(ps), start, length, w.Backward)
}

// SkipNotPatterns moves to the first position where any pattern matches, or returns -1.
func (m *Matcher) SkipNotPatterns(ps []*fast.Buffer, w Window) int {
	start, length := w.resolve(m.Len())
	return skipNotPatterns(m.buf.Bytes(), raw(ps), start, length, w.Backward)
}
