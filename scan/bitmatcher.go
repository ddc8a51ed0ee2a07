package scan

import (
	"github.com/rony4d/go-binscan/utils/bits"
)

// BitMatcher runs the Matcher repertoire over bit positions.
// Buffer and patterns are projected to their '0'/'1' text, searched with the byte
// algorithms, and captured values are cut back out of the bit buffer.
type BitMatcher struct {
	buf *bits.Buffer
}

// NewBitMatcher creates a BitMatcher over buf. The buffer is shared, not copied.
func NewBitMatcher(buf *bits.Buffer) *BitMatcher {
	return &BitMatcher{buf: buf}
}

// Buffer returns the scanned buffer.
func (m *BitMatcher) Buffer() *bits.Buffer {
	return m.buf
}

// Len returns the number of significant bits in the scanned buffer.
func (m *BitMatcher) Len() int {
	return m.buf.Len()
}

// PatternLen returns the width of a pattern in bits.
func (m *BitMatcher) PatternLen(p *bits.Buffer) int {
	return p.Len()
}

func (m *BitMatcher) text() []byte {
	return []byte(m.buf.String())
}

func (m *BitMatcher) value(s Span) *bits.Buffer {
	return m.buf.Slice(s.Start, s.End)
}

func bitText(ps []*bits.Buffer) [][]byte {
	out := make([][]byte, len(ps))
	for i, p := range ps {
		out[i] = []byte(p.String())
	}
	return out
}

// FindPattern returns the bit position after (forward) or before (backward) the first match of p.
func (m *BitMatcher) FindPattern(p *bits.Buffer, w Window) int {
	start, length := w.resolve(m.Len())
	return findPattern(m.text(), []byte(p.String()), start, length, w.Backward)
}

// FindFirstIn returns the match of any pattern nearest the front of the window.
func (m *BitMatcher) FindFirstIn(ps []*bits.Buffer, w Window) FirstIn {
	start, length := w.resolve(m.Len())
	return findFirstIn(m.text(), bitText(ps), start, length, w.Backward)
}

// FindAllIn lists every match of any pattern, left to right.
func (m *BitMatcher) FindAllIn(ps []*bits.Buffer, w Window) []FirstIn {
	start, length := w.normal(m.Len())
	return findAllIn(m.text(), bitText(ps), start, length)
}

// FindAllPatternIn lists the end positions of the non-overlapping occurrences of p.
func (m *BitMatcher) FindAllPatternIn(p *bits.Buffer, w Window) ([]int, bool) {
	start, length := w.normal(m.Len())
	return findAllPatternIn(m.text(), []byte(p.String()), start, length)
}

// FindFirstNotIn captures the first run of bits not made of patterns.
func (m *BitMatcher) FindFirstNotIn(ps []*bits.Buffer, w Window) NotIn[*bits.Buffer] {
	start, length := w.resolve(m.Len())
	return mapNotIn(findFirstNotIn(m.text(), bitText(ps), start, length, w.Backward), m.value)
}

// FindAllNotIn splits the window into runs separated by patterns.
func (m *BitMatcher) FindAllNotIn(ps []*bits.Buffer, w Window) []NotIn[*bits.Buffer] {
	start, length := w.normal(m.Len())
	found := findAllNotIn(m.text(), bitText(ps), start, length)
	out := make([]NotIn[*bits.Buffer], len(found))
	for i, f := range found {
		out[i] = mapNotIn(f, m.value)
	}
	return out
}

// FindFirstSequence captures the first run made only of patterns.
func (m *BitMatcher) FindFirstSequence(ps []*bits.Buffer, w Window) Sequence[*bits.Buffer] {
	start, length := w.resolve(m.Len())
	return mapSequence(findFirstSequence(m.text(), bitText(ps), start, length, w.Backward), m.value)
}

// FindAllSequences captures every run made only of patterns, left to right.
func (m *BitMatcher) FindAllSequences(ps []*bits.Buffer, w Window) []Sequence[*bits.Buffer] {
	start, length := w.normal(m.Len())
	found := findAllSequences(m.text(), bitText(ps), start, length)
	out := make([]Sequence[*bits.Buffer], len(found))
	for i, f := range found {
		out[i] = mapSequence(f, m.value)
	}
	return out
}

// FindPairedPatterns pairs occurrences of a left and a right delimiter.
func (m *BitMatcher) FindPairedPatterns(l, r *bits.Buffer, w Window) []Pair {
	start, length := w.normal(m.Len())
	return findPairedPatterns(m.text(), []byte(l.String()), []byte(r.String()), start, length)
}

// FindPairedArrays pairs occurrences of alternative left and right delimiters.
func (m *BitMatcher) FindPairedArrays(ls, rs []*bits.Buffer, w Window) []PairIn {
	start, length := w.normal(m.Len())
	return findPairedArrays(m.text(), bitText(ls), bitText(rs), start, length)
}

// ReplacePattern swaps every occurrence of search inside the window for repl, rebuilding the bits in place.
func (m *BitMatcher) ReplacePattern(search, repl *bits.Buffer, w Window) Replacement {
	found, _ := m.FindAllPatternIn(search, w)
	return m.ReplaceFound(search, repl, found)
}

// ReplaceFound swaps the occurrences of search ending at the given bit positions for repl.
func (m *BitMatcher) ReplaceFound(search, repl *bits.Buffer, found []int) Replacement {
	out, rep := replaceAll(m.text(), []byte(search.String()), []byte(repl.String()), found)
	if !rep.Succeeded {
		return rep
	}
	// out only holds '0' and '1'
	_ = m.buf.SetString(string(out))
	logger.Trace("Replaced bit pattern", "occurrences", len(found), "bits", len(out))
	return rep
}

// SkipPatterns consumes patterns while any of them matches at the current position.
func (m *BitMatcher) SkipPatterns(ps []*bits.Buffer, w Window) int {
	start, length := w.resolve(m.Len())
	return skipPatterns(m.text(), bitText(ps), start, length, w.Backward)
}

// SkipNotPatterns moves to the first position where any pattern matches, or returns -1.
func (m *BitMatcher) SkipNotPatterns(ps []*bits.Buffer, w Window) int {
	start, length := w.resolve(m.Len())
	return skipNotPatterns(m.text(), bitText(ps), start, length, w.Backward)
}
