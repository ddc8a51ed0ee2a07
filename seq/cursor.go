package seq

// This package implements cursors: a Matcher plus a persistent, directional window
// that moves as tokens are consumed.
//
// Positions follow the scan package: a forward window covers [start, start+length),
// a backward one covers [start-length, start). Every single-result search accepts a
// gap, the largest distance between the cursor and the match that still counts as
// found. Use AnyGap to search the whole remaining window.

import (
	"errors"

	"github.com/ethereum/go-ethereum/log"

	"github.com/rony4d/go-binscan/scan"
)

// AnyGap lets a match lie anywhere inside the remaining window.
const AnyGap = -1

// ErrWindowRange is returned when a cursor is configured outside its buffer.
var ErrWindowRange = errors.New("seq: window is out of the buffer range")

var logger = log.New("module", "seq")

// Searcher is the search repertoire a Cursor drives.
// *scan.Matcher and *scan.BitMatcher implement it.
type Searcher[P, V any] interface {
	Len() int
	PatternLen(p P) int

	FindPattern(p P, w scan.Window) int
	FindFirstIn(ps []P, w scan.Window) scan.FirstIn
	FindAllIn(ps []P, w scan.Window) []scan.FirstIn
	FindAllPatternIn(p P, w scan.Window) ([]int, bool)
	FindFirstNotIn(ps []P, w scan.Window) scan.NotIn[V]
	FindAllNotIn(ps []P, w scan.Window) []scan.NotIn[V]
	FindFirstSequence(ps []P, w scan.Window) scan.Sequence[V]
	FindAllSequences(ps []P, w scan.Window) []scan.Sequence[V]
	FindPairedPatterns(l, r P, w scan.Window) []scan.Pair
	FindPairedArrays(ls, rs []P, w scan.Window) []scan.PairIn
	ReplacePattern(search, repl P, w scan.Window) scan.Replacement
	SkipPatterns(ps []P, w scan.Window) int
	SkipNotPatterns(ps []P, w scan.Window) int
}

// Config describes the initial window of a cursor.
type Config struct {
	Backward bool
	// Start defaults to the beginning of the buffer in the scan direction.
	Start int
	// Length defaults to everything between Start and the buffer edge.
	Length int
	// AppendBlock is the minimal growth step used by appends.
	AppendBlock int
}

// DefaultConfig returns a forward window over the whole buffer.
func DefaultConfig() Config {
	return Config{
		Start:  scan.Default,
		Length: scan.Default,
	}
}

// Snapshot is a saved cursor position.
type Snapshot struct {
	Start  int
	Length int
}

// Cursor tracks a window over a Searcher.
type Cursor[P, V any] struct {
	m        Searcher[P, V]
	empty    func() V
	start    int
	length   int
	backward bool
	prev     Snapshot
}

func newCursor[P, V any](m Searcher[P, V], empty func() V, cfg Config) (*Cursor[P, V], error) {
	n := m.Len()

	start := cfg.Start
	switch {
	case start == scan.Default && cfg.Backward:
		start = n
	case start == scan.Default:
		start = 0
	case start < 0 || start > n:
		return nil, ErrWindowRange
	}

	limit := n - start
	if cfg.Backward {
		limit = start
	}
	length := cfg.Length
	switch {
	case length == scan.Default:
		length = limit
	case length < 0 || length > limit:
		return nil, ErrWindowRange
	}

	c := &Cursor[P, V]{
		m:        m,
		empty:    empty,
		start:    start,
		length:   length,
		backward: cfg.Backward,
	}
	c.prev = c.Mark()
	return c, nil
}

// Start returns the current position.
func (c *Cursor[P, V]) Start() int {
	return c.start
}

// Length returns the remaining window length.
func (c *Cursor[P, V]) Length() int {
	return c.length
}

// Backward reports the scan direction.
func (c *Cursor[P, V]) Backward() bool {
	return c.backward
}

// Searcher returns the wrapped searcher.
func (c *Cursor[P, V]) Searcher() Searcher[P, V] {
	return c.m
}

func (c *Cursor[P, V]) window() scan.Window {
	return scan.Window{Start: c.start, Length: c.length, Backward: c.backward}
}

// Mark returns the current position.
func (c *Cursor[P, V]) Mark() Snapshot {
	return Snapshot{Start: c.start, Length: c.length}
}

// Reset moves the cursor back to s. A snapshot that no longer fits the
// buffer is clamped to its edges.
func (c *Cursor[P, V]) Reset(s Snapshot) {
	c.prev = c.Mark()
	n := c.m.Len()
	start := s.Start
	switch {
	case start < 0:
		start = 0
	case start > n:
		start = n
	}
	limit := n - start
	if c.backward {
		limit = start
	}
	length := s.Length
	switch {
	case length < 0:
		length = 0
	case length > limit:
		length = limit
	}
	c.start, c.length = start, length
}

// ResetPosition restores the position held before the last move.
// Only one level is kept: a second call swaps back.
func (c *Cursor[P, V]) ResetPosition() {
	c.Reset(c.prev)
}

// Advance moves the cursor to an absolute position and shrinks the window by
// the distance travelled. Positions outside the buffer are ignored.
func (c *Cursor[P, V]) Advance(to int) bool {
	if to < 0 || to > c.m.Len() {
		return false
	}
	c.prev = c.Mark()
	if c.backward {
		c.length -= c.start - to
	} else {
		c.length -= to - c.start
	}
	if c.length < 0 {
		c.length = 0
	}
	c.start = to
	return true
}

// gap clamps a requested gap to the searchable length.
func gap(g, length int) int {
	if g < 0 || g > length {
		return length
	}
	return g
}

// tooFar reports whether a match of width plen ending (forward) or starting
// (backward) at pos lies more than g elements from the cursor.
func (c *Cursor[P, V]) tooFar(pos, plen, g int) bool {
	if c.backward {
		return pos < c.start-plen-g
	}
	return pos > c.start+plen+g
}

func (c *Cursor[P, V]) notFound() scan.FirstIn {
	if c.backward {
		return scan.FirstIn{ID: -1}
	}
	return scan.FirstIn{ID: -1, Position: c.start + c.length}
}

// FindPattern searches for p and moves the cursor to the match.
func (c *Cursor[P, V]) FindPattern(p P, g int) int {
	g = gap(g, c.length)
	pos := c.m.FindPattern(p, c.window())
	if pos == -1 {
		return -1
	}
	if c.tooFar(pos, c.m.PatternLen(p), g) {
		logger.Trace("Pattern beyond gap", "start", c.start, "position", pos, "gap", g)
		return -1
	}
	c.Advance(pos)
	return pos
}

// FindFirstIn searches for the nearest of ps and moves the cursor to it.
func (c *Cursor[P, V]) FindFirstIn(ps []P, g int) scan.FirstIn {
	g = gap(g, c.length)
	res := c.m.FindFirstIn(ps, c.window())
	if !res.Found() {
		return res
	}
	if c.tooFar(res.Position, res.Length, g) {
		logger.Trace("Pattern beyond gap", "start", c.start, "position", res.Position, "gap", g)
		return c.notFound()
	}
	c.Advance(res.Position)
	return res
}

// FindFirstNotIn captures the next token delimited by ps.
// The cursor moves past the delimiter that closes the token, or to the window
// edge when the token runs to the end.
func (c *Cursor[P, V]) FindFirstNotIn(ps []P, g int) scan.NotIn[V] {
	g = gap(g, c.length)
	res := c.m.FindFirstNotIn(ps, c.window())

	// the leading delimiter block is the one next to the cursor
	lead := res.Left
	if c.backward {
		lead = res.Right
	}
	if lead.Found() && c.tooFar(lead.Position, lead.Length, g) {
		logger.Trace("Delimiter beyond gap", "start", c.start, "position", lead.Position, "gap", g)
		return scan.NotIn[V]{
			Left:  scan.FirstIn{ID: -1, Position: c.start},
			Right: scan.FirstIn{ID: -1},
			Value: c.empty(),
		}
	}

	switch {
	case c.backward && res.Left.Found():
		c.Advance(res.Left.Position)
	case c.backward:
		c.Advance(c.start - c.length)
	case res.Right.Found():
		c.Advance(res.Right.Position)
	default:
		c.Advance(c.start + c.length)
	}
	return res
}

// FindFirstSequence captures the next run made of ps within length elements
// (AnyGap for the whole window) and moves the cursor past it.
func (c *Cursor[P, V]) FindFirstSequence(ps []P, length, g int) scan.Sequence[V] {
	if length < 0 || length > c.length {
		length = c.length
	}
	g = gap(g, length)

	res := c.m.FindFirstSequence(ps, scan.Window{Start: c.start, Length: length, Backward: c.backward})
	if res.Position == -1 {
		return res
	}
	if c.tooFar(res.Position, res.Length, g) {
		logger.Trace("Sequence beyond gap", "start", c.start, "position", res.Position, "gap", g)
		return scan.Sequence[V]{Position: -1, Value: c.empty()}
	}
	c.Advance(res.Position)
	return res
}

// FindPairedPatterns pairs l and r inside the window. The cursor does not move.
// Nothing is returned when the pair nearest the cursor lies beyond the gap.
func (c *Cursor[P, V]) FindPairedPatterns(l, r P, g int) []scan.Pair {
	g = gap(g, c.length)
	res := c.m.FindPairedPatterns(l, r, c.window())
	if len(res) == 0 {
		return res
	}
	if c.backward {
		last := res[0].Right
		for _, p := range res[1:] {
			if p.Right > last {
				last = p.Right
			}
		}
		if c.tooFar(last, c.m.PatternLen(r), g) {
			return []scan.Pair{}
		}
	} else if c.tooFar(res[0].Left, c.m.PatternLen(l), g) {
		return []scan.Pair{}
	}
	return res
}

// FindPairedArrays pairs alternative delimiters inside the window. The cursor does not move.
func (c *Cursor[P, V]) FindPairedArrays(ls, rs []P, g int) []scan.PairIn {
	g = gap(g, c.length)
	res := c.m.FindPairedArrays(ls, rs, c.window())
	if len(res) == 0 {
		return res
	}
	if c.backward {
		last := res[0].Right
		for _, p := range res[1:] {
			if p.Right.Position > last.Position {
				last = p.Right
			}
		}
		if c.tooFar(last.Position, last.Length, g) {
			return []scan.PairIn{}
		}
	} else if c.tooFar(res[0].Left.Position, res[0].Left.Length, g) {
		return []scan.PairIn{}
	}
	return res
}

// FindAllIn lists every match inside the window. The cursor does not move.
func (c *Cursor[P, V]) FindAllIn(ps []P) []scan.FirstIn {
	return c.m.FindAllIn(ps, c.window())
}

// FindAllPatternIn lists the occurrences of p inside the window. The cursor does not move.
func (c *Cursor[P, V]) FindAllPatternIn(p P) ([]int, bool) {
	return c.m.FindAllPatternIn(p, c.window())
}

// FindAllNotIn tokenizes the window. The cursor does not move.
func (c *Cursor[P, V]) FindAllNotIn(ps []P) []scan.NotIn[V] {
	return c.m.FindAllNotIn(ps, c.window())
}

// FindAllSequences captures every run made of ps inside the window. The cursor does not move.
func (c *Cursor[P, V]) FindAllSequences(ps []P) []scan.Sequence[V] {
	return c.m.FindAllSequences(ps, c.window())
}

// ReplacePattern replaces search with repl inside the window.
// The window is resized so it keeps covering the same content.
func (c *Cursor[P, V]) ReplacePattern(search, repl P) scan.Replacement {
	rep := c.m.ReplacePattern(search, repl, c.window())
	if !rep.Succeeded {
		return rep
	}
	delta := len(rep.SearchPositions) * (c.m.PatternLen(repl) - c.m.PatternLen(search))
	c.length += delta
	c.prev.Length += delta
	if c.backward {
		c.start += delta
		c.prev.Start += delta
	}
	return rep
}

// SkipPatterns consumes any run of ps at the cursor.
func (c *Cursor[P, V]) SkipPatterns(ps []P) int {
	pos := c.m.SkipPatterns(ps, c.window())
	c.Advance(pos)
	return pos
}

// SkipNotPatterns moves the cursor to the next occurrence of any of ps.
// It returns -1 and stays in place when there is none.
func (c *Cursor[P, V]) SkipNotPatterns(ps []P) int {
	pos := c.m.SkipNotPatterns(ps, c.window())
	if pos == -1 {
		return -1
	}
	c.Advance(pos)
	return pos
}
