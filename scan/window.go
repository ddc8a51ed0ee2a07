package scan

// Default marks a window field that should be derived from the buffer.
const Default = -1

// Window is the region a search is restricted to.
//
// A forward window covers [Start, Start+Length), a backward one covers
// [Start-Length, Start). Positions are always absolute; direction only decides
// which end of the window is scanned first.
type Window struct {
	Start    int
	Length   int
	Backward bool
}

// All is the whole buffer scanned forward.
func All() Window {
	return Window{Start: Default, Length: Default}
}

// AllBackward is the whole buffer scanned from its end.
func AllBackward() Window {
	return Window{Start: Default, Length: Default, Backward: true}
}

// Forward returns a forward window. Default may be used for either argument.
func Forward(start, length int) Window {
	return Window{Start: start, Length: length}
}

// Backward returns a backward window. Default may be used for either argument.
func Backward(start, length int) Window {
	return Window{Start: start, Length: length, Backward: true}
}

// resolve fills defaults and clamps the window to a buffer of n elements.
func (w Window) resolve(n int) (start, length int) {
	start = w.Start
	if start < 0 {
		start = 0
		if w.Backward {
			start = n
		}
	}
	if start > n {
		start = n
	}

	limit := n - start
	if w.Backward {
		limit = start
	}
	length = w.Length
	if length < 0 || length > limit {
		length = limit
	}
	return start, length
}

// normal resolves the window and returns it as forward coordinates.
func (w Window) normal(n int) (start, length int) {
	start, length = w.resolve(n)
	if w.Backward {
		start -= length
	}
	return start, length
}
