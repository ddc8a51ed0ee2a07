package scan

// FirstIn identifies which pattern of a set matched and where.
// ID is -1 when nothing matched.
type FirstIn struct {
	ID       int
	Position int
	Length   int
}

// Found reports whether the result holds a match.
func (f FirstIn) Found() bool {
	return f.ID != -1
}

// NotIn is a captured run bracketed by two in-set boundaries.
// Left is always the boundary nearer the window start.
type NotIn[V any] struct {
	Left  FirstIn
	Right FirstIn
	Value V
}

// Sequence is a captured run made only of in-set patterns.
// Position is -1 when no run was found.
type Sequence[V any] struct {
	Position int
	Length   int
	Value    V
}

// Pair holds the end positions of a matched left and right delimiter.
type Pair struct {
	Left  int
	Right int
}

// PairIn is a Pair found among alternative delimiters.
type PairIn struct {
	Left  FirstIn
	Right FirstIn
}

// Replacement reports the outcome of a replace.
// SearchPositions are the end positions of the replaced occurrences in the original
// buffer, ReplacePositions the start positions of the inserted replacements.
type Replacement struct {
	Succeeded        bool
	SearchPositions  []int
	ReplacePositions []int
}

// Span is a half-open [Start, End) range of absolute positions.
type Span struct {
	Start int
	End   int
}

// Len returns the number of elements covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

func mapNotIn[V any](r NotIn[Span], value func(Span) V) NotIn[V] {
	return NotIn[V]{Left: r.Left, Right: r.Right, Value: value(r.Value)}
}

func mapSequence[V any](r Sequence[Span], value func(Span) V) Sequence[V] {
	return Sequence[V]{Position: r.Position, Length: r.Length, Value: value(r.Value)}
}
