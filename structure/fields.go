package structure

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-binscan/scan"
	"github.com/rony4d/go-binscan/utils/fast"
)

func fixed(name string, width int, read func(r *fast.Reader) interface{}) Field {
	return Field{
		Name:     name,
		MaxWidth: width,
		Decode: func(b []byte) Result {
			if len(b) < width {
				return Fail()
			}
			return OK(width, read(fast.NewReader(b)))
		},
	}
}

// Uint8 decodes a single byte as uint8.
func Uint8(name string) Field {
	return fixed(name, 1, func(r *fast.Reader) interface{} { return r.ReadByte() })
}

// Uint16 decodes a big-endian uint16.
func Uint16(name string) Field {
	return fixed(name, 2, func(r *fast.Reader) interface{} { return r.Uint16() })
}

// Uint24 decodes a big-endian 3-byte unsigned integer into a uint32.
func Uint24(name string) Field {
	return fixed(name, 3, func(r *fast.Reader) interface{} { return r.Uint24() })
}

// Uint32 decodes a big-endian uint32.
func Uint32(name string) Field {
	return fixed(name, 4, func(r *fast.Reader) interface{} { return r.Uint32() })
}

// Bytes takes exactly n bytes. The value is a copy.
func Bytes(name string, n int) Field {
	return fixed(name, n, func(r *fast.Reader) interface{} { return common.CopyBytes(r.Read(n)) })
}

// Text takes exactly n bytes as Latin-1 text.
func Text(name string, n int) Field {
	return fixed(name, n, func(r *fast.Reader) interface{} { return fast.Wrap(r.Read(n)).Text(0, -1) })
}

// Expect checks that the input starts with one of lits and consumes it.
// The first matching literal wins, so list longer literals first when one is a prefix of another.
func Expect(lits ...string) Field {
	width := 0
	for _, l := range lits {
		if len(l) > width {
			width = len(l)
		}
	}
	return Field{
		Kind:     Check,
		MaxWidth: width,
		Decode: func(b []byte) Result {
			for _, l := range lits {
				if len(l) > 0 && len(b) >= len(l) && string(b[:len(l)]) == l {
					return OK(len(l), l)
				}
			}
			return Fail()
		},
	}
}

func digitRun(b []byte) int {
	n := 0
	for n < len(b) && b[n] >= '0' && b[n] <= '9' {
		n++
	}
	return n
}

// Digits decodes up to max ASCII decimal digits into a uint64. At least one digit is required.
func Digits(name string, max int) Field {
	return Field{
		Name:     name,
		MaxWidth: max,
		Decode: func(b []byte) Result {
			n := digitRun(b)
			if n == 0 {
				return Fail()
			}
			var v uint64
			for _, c := range b[:n] {
				v = v*10 + uint64(c-'0')
			}
			return OK(n, v)
		},
	}
}

// SignedDigits decodes an optional sign followed by ASCII decimal digits into an int64.
// max counts the sign.
func SignedDigits(name string, max int) Field {
	return Field{
		Name:     name,
		MaxWidth: max,
		Decode: func(b []byte) Result {
			sign, at := int64(1), 0
			if len(b) > 0 && (b[0] == '-' || b[0] == '+') {
				if b[0] == '-' {
					sign = -1
				}
				at = 1
			}
			n := digitRun(b[at:])
			if n == 0 {
				return Fail()
			}
			var v int64
			for _, c := range b[at : at+n] {
				v = v*10 + int64(c-'0')
			}
			return OK(at+n, sign*v)
		},
	}
}

// OneOf maps a single byte to a value. Bytes missing from the map do not match.
func OneOf(name string, values map[byte]interface{}) Field {
	return Field{
		Name:     name,
		MaxWidth: 1,
		Decode: func(b []byte) Result {
			if len(b) == 0 {
				return Fail()
			}
			v, ok := values[b[0]]
			if !ok {
				return Fail()
			}
			return OK(1, v)
		},
	}
}

func patterns(ss []string) []*fast.Buffer {
	out := make([]*fast.Buffer, len(ss))
	for i, s := range ss {
		out[i] = fast.FromBytes([]byte(s))
	}
	return out
}

// Until takes the bytes in front of the nearest delimiter found within max bytes.
// The delimiter itself is left for the next field.
func Until(name string, max int, delims ...string) Field {
	ps := patterns(delims)
	return Field{
		Name:     name,
		MaxWidth: max,
		Decode: func(b []byte) Result {
			found := scan.NewMatcher(fast.Wrap(b)).FindFirstIn(ps, scan.All())
			if !found.Found() {
				return Fail()
			}
			width := found.Position - found.Length
			return OK(width, common.CopyBytes(b[:width]))
		},
	}
}

// Skip consumes any run of the given patterns within max bytes. An empty run matches.
func Skip(max int, set ...string) Field {
	ps := patterns(set)
	return Field{
		Kind:     Check,
		MaxWidth: max,
		Decode: func(b []byte) Result {
			return OK(scan.NewMatcher(fast.Wrap(b)).SkipPatterns(ps, scan.All()), nil)
		},
	}
}

// Default injects v without reading any input.
func Default(name string, v interface{}) Field {
	return Field{Name: name, Default: v, HasDefault: true}
}
