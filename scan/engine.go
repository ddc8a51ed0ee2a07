package scan

// engine.go holds the search algorithms shared by Matcher and BitMatcher.
//
// Every function works on a plain byte slice with a resolved window
// (start, length, backward). BitMatcher feeds them the '0'/'1' text of its bits,
// so one implementation serves both granularities.
//
// Conventions:
// - A forward match reports the position right after the matched bytes.
// - A backward match reports the position right before them.
// - Empty patterns never match.

import (
	"bytes"
	"sort"
)

// findPattern locates p inside the window.
func findPattern(data, p []byte, start, length int, backward bool) int {
	plen := len(p)
	if plen == 0 || plen > length {
		return -1
	}
	if backward {
		lo := start - length
		if idx := bytes.LastIndex(data[lo:start], p); idx >= 0 {
			return lo + idx
		}
		return -1
	}
	if idx := bytes.Index(data[start:start+length], p); idx >= 0 {
		return start + idx + plen
	}
	return -1
}

// findFirstIn returns the match nearest the front of the window.
// On a tie the pattern with the higher index wins.
func findFirstIn(data []byte, ps [][]byte, start, length int, backward bool) FirstIn {
	res := FirstIn{ID: -1, Position: start + length}
	if backward {
		res.Position = 0
	}

	for i, p := range ps {
		pos := findPattern(data, p, start, length, backward)
		if pos == -1 {
			continue
		}
		plen := len(p)
		if backward {
			// the front of a backward window is its end
			if pos+plen >= res.Position+res.Length {
				res = FirstIn{ID: i, Position: pos, Length: plen}
			}
		} else {
			if pos-plen <= res.Position-res.Length {
				res = FirstIn{ID: i, Position: pos, Length: plen}
			}
		}
	}
	return res
}

// findAllIn lists every match of the set from left to right.
func findAllIn(data []byte, ps [][]byte, start, length int) []FirstIn {
	out := []FirstIn{}
	pos := start
	for {
		found := findFirstIn(data, ps, pos, length, false)
		if !found.Found() {
			return out
		}
		length -= found.Position - pos
		pos = found.Position
		out = append(out, found)
	}
}

// findAllPatternIn lists the end positions of the non-overlapping occurrences of p.
// It returns false only when p cannot fit into the window at all.
func findAllPatternIn(data, p []byte, start, length int) ([]int, bool) {
	plen := len(p)
	if plen == 0 || plen > length {
		return nil, false
	}
	out := []int{}
	end := start + length
	for pos := start; pos+plen <= end; {
		idx := bytes.Index(data[pos:end], p)
		if idx < 0 {
			break
		}
		pos += idx + plen
		out = append(out, pos)
	}
	return out, true
}

// findFirstNotIn skips a block of adjacent in-set matches and captures the run up to the next one.
func findFirstNotIn(data []byte, ps [][]byte, start, length int, backward bool) NotIn[Span] {
	left := FirstIn{ID: -1, Position: start}
	right := FirstIn{ID: -1}

	var (
		value Span
		done  bool
	)
	for cur := length; cur > 0 && !done; {
		// the frontier is where the last adjacent match ended
		frontier := start + length - cur
		if backward {
			frontier = start - length + cur
		}
		right = findFirstIn(data, ps, frontier, cur, backward)

		switch {
		case !right.Found():
			if backward {
				value = Span{Start: start - length, End: left.Position}
			} else {
				value = Span{Start: left.Position, End: start + length}
			}
			done = true
		case backward && right.Position != left.Position-right.Length:
			value = Span{Start: right.Position + right.Length, End: left.Position}
			done = true
		case !backward && right.Position != left.Position+right.Length:
			value = Span{Start: left.Position, End: right.Position - right.Length}
			done = true
		default:
			left = right
			cur -= right.Length
		}
	}
	if !done {
		value = Span{Start: left.Position, End: left.Position}
	}

	if backward {
		left, right = right, left
	}
	return NotIn[Span]{Left: left, Right: right, Value: value}
}

// findAllNotIn tokenizes the window from left to right. Empty runs are not reported.
func findAllNotIn(data []byte, ps [][]byte, start, length int) []NotIn[Span] {
	out := []NotIn[Span]{}
	pos := start
	for length > 0 {
		found := findFirstNotIn(data, ps, pos, length, false)
		if found.Value.Len() > 0 {
			out = append(out, found)
		}
		if !found.Right.Found() {
			break
		}
		length -= found.Right.Position - pos
		pos = found.Right.Position
	}
	return out
}

// skipPatterns consumes in-set patterns for as long as one matches at the current position.
func skipPatterns(data []byte, ps [][]byte, start, length int, backward bool) int {
	lo, hi := start, start+length
	if backward {
		lo, hi = start-length, start
	}

	pos := start
	for {
		matched := false
		for _, p := range ps {
			plen := len(p)
			if plen == 0 {
				continue
			}
			if backward {
				if pos-plen >= lo && bytes.Equal(data[pos-plen:pos], p) {
					pos -= plen
					matched = true
					break
				}
			} else {
				if pos+plen <= hi && bytes.Equal(data[pos:pos+plen], p) {
					pos += plen
					matched = true
					break
				}
			}
		}
		if !matched {
			return pos
		}
	}
}

// skipNotPatterns moves one position at a time until an in-set pattern matches.
func skipNotPatterns(data []byte, ps [][]byte, start, length int, backward bool) int {
	for i := 0; i < length; i++ {
		for _, p := range ps {
			plen := len(p)
			if plen == 0 || plen > length-i {
				continue
			}
			if backward {
				s := start - i - plen
				if bytes.Equal(data[s:s+plen], p) {
					return start - i
				}
			} else {
				s := start + i
				if bytes.Equal(data[s:s+plen], p) {
					return s
				}
			}
		}
	}
	return -1
}

// findFirstSequence captures the first run made of in-set patterns.
func findFirstSequence(data []byte, ps [][]byte, start, length int, backward bool) Sequence[Span] {
	first := skipNotPatterns(data, ps, start, length, backward)
	if first == -1 {
		return Sequence[Span]{Position: -1}
	}

	travelled := first - start
	if backward {
		travelled = start - first
	}
	last := skipPatterns(data, ps, first, length-travelled, backward)

	value := Span{Start: first, End: last}
	if backward {
		value = Span{Start: last, End: first}
	}
	return Sequence[Span]{Position: last, Length: value.Len(), Value: value}
}

// findAllSequences captures every in-set run from left to right.
func findAllSequences(data []byte, ps [][]byte, start, length int) []Sequence[Span] {
	out := []Sequence[Span]{}
	pos := start
	for length > 0 {
		found := findFirstSequence(data, ps, pos, length, false)
		if found.Position == -1 {
			break
		}
		length -= found.Position - pos
		pos = found.Position
		out = append(out, found)
	}
	return out
}

// pairUp matches every right boundary with the nearest unconsumed left boundary before it.
// Boundaries sharing a position cancel out; pairing stops at a right boundary with no left before it.
func pairUp(lefts, rights []int) [][2]int {
	out := [][2]int{}
	for len(lefts) > 0 && len(rights) > 0 {
		if lefts[0] == rights[0] {
			lefts, rights = lefts[1:], rights[1:]
			continue
		}

		cur := 0
		for cur < len(lefts) && lefts[cur] < rights[0] {
			cur++
		}
		if cur == 0 {
			break
		}
		out = append(out, [2]int{lefts[cur-1], rights[0]})
		lefts = append(lefts[:cur-1:cur-1], lefts[cur:]...)
		rights = rights[1:]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i][0] < out[j][0]
	})
	return out
}

// findPairedPatterns pairs single left and right delimiters.
func findPairedPatterns(data, l, r []byte, start, length int) []Pair {
	out := []Pair{}
	if bytes.Equal(l, r) {
		return out
	}
	lefts, ok := findAllPatternIn(data, l, start, length)
	if !ok || len(lefts) == 0 {
		return out
	}
	rights, ok := findAllPatternIn(data, r, start, length)
	if !ok || len(rights) == 0 {
		return out
	}

	for _, p := range pairUp(lefts, rights) {
		out = append(out, Pair{Left: p[0], Right: p[1]})
	}
	return out
}

// findPairedArrays pairs delimiters drawn from alternative sets.
func findPairedArrays(data []byte, ls, rs [][]byte, start, length int) []PairIn {
	out := []PairIn{}
	lefts := findAllIn(data, ls, start, length)
	if len(lefts) == 0 {
		return out
	}
	rights := findAllIn(data, rs, start, length)
	if len(rights) == 0 {
		return out
	}

	leftAt := make(map[int]FirstIn, len(lefts))
	leftPos := make([]int, len(lefts))
	for i, f := range lefts {
		leftAt[f.Position] = f
		leftPos[i] = f.Position
	}
	rightAt := make(map[int]FirstIn, len(rights))
	rightPos := make([]int, len(rights))
	for i, f := range rights {
		rightAt[f.Position] = f
		rightPos[i] = f.Position
	}

	for _, p := range pairUp(leftPos, rightPos) {
		out = append(out, PairIn{Left: leftAt[p[0]], Right: rightAt[p[1]]})
	}
	return out
}

// replaceAll rebuilds data with every occurrence ending at one of ends swapped for repl.
// ends must be ascending, non-overlapping end positions of search.
func replaceAll(data, search, repl []byte, ends []int) ([]byte, Replacement) {
	if len(ends) == 0 {
		return nil, Replacement{}
	}

	out := make([]byte, len(data)-len(ends)*(len(search)-len(repl)))
	rep := Replacement{
		Succeeded:        true,
		SearchPositions:  append([]int(nil), ends...),
		ReplacePositions: make([]int, 0, len(ends)),
	}

	src, dst := 0, 0
	for _, end := range ends {
		dst += copy(out[dst:], data[src:end-len(search)])
		rep.ReplacePositions = append(rep.ReplacePositions, dst)
		dst += copy(out[dst:], repl)
		src = end
	}
	copy(out[dst:], data[src:])
	return out, rep
}
