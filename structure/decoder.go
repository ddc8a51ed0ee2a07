package structure

// This package decodes runs of fixed-layout records from a byte slice.
//
// A record is described by an ordered list of Fields. Every field looks at the next
// MaxWidth bytes, reports how many of them it actually used, and optionally produces a
// value. Fields that use fewer bytes than offered hand the rest over to the next field,
// so self-delimiting tokens (digits up to a space, a line ending of one or two bytes)
// need no special support.
//
// Decoding stops at the first failing field. Completed records are kept, the record in
// progress is dropped.

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/log"
)

var (
	// ErrStartOutOfRange is returned when the start offset lies outside the data.
	ErrStartOutOfRange = errors.New("structure: start offset is out of range")
	// ErrInvalidField is returned for fields that cannot be decoded with.
	ErrInvalidField = errors.New("structure: invalid field")
)

var logger = log.New("module", "structure")

// Kind tells whether a field contributes to the record.
type Kind int

const (
	// Value fields store their decoded value under their name.
	Value Kind = iota
	// Check fields only validate and consume input.
	Check
)

// Result is what a field decoder reports.
type Result struct {
	// Status is negative when the input does not match the field.
	Status int
	// Width is the number of bytes the field used, at most the offered width.
	Width int
	Value interface{}
}

// OK reports a match of the given width.
func OK(width int, v interface{}) Result {
	return Result{Status: 1, Width: width, Value: v}
}

// Fail reports a mismatch.
func Fail() Result {
	return Result{Status: -1}
}

// Failed reports whether the field did not match.
func (r Result) Failed() bool {
	return r.Status < 0
}

// DecodeFunc decodes one field from the bytes offered to it.
// The slice is shorter than the field's MaxWidth near the end of the data.
type DecodeFunc func(b []byte) Result

// Field describes one element of a record.
type Field struct {
	Name string
	Kind Kind
	// MaxWidth is the number of bytes offered to Decode.
	// Zero means the field takes no input and only injects Default.
	MaxWidth   int
	Default    interface{}
	HasDefault bool
	Decode     DecodeFunc
}

// Record is one decoded structure.
type Record struct {
	Values map[string]interface{}
	// Offset is the position of the record in the data.
	Offset int
	// Length is the number of bytes the record used.
	Length int
}

// Get returns the value stored for a field.
func (r Record) Get(name string) (interface{}, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// Options restrict what Decode reads.
type Options struct {
	Start int
	// Length limits the bytes read after Start; zero or negative means up to the end.
	Length int
	// Count stops decoding after that many records; zero means no limit.
	Count int
}

func validate(fields []Field) error {
	for i, f := range fields {
		switch {
		case f.MaxWidth < 0:
			return fmt.Errorf("%w: field %d (%q) has a negative width", ErrInvalidField, i, f.Name)
		case f.MaxWidth > 0 && f.Decode == nil:
			return fmt.Errorf("%w: field %d (%q) has no decoder", ErrInvalidField, i, f.Name)
		}
	}
	return nil
}

// Decode reads records from data until the data ends, a field fails or opts.Count
// records are complete. It returns the records and the number of bytes they used.
// Errors are only returned for invalid options or fields; malformed data just ends
// the result early.
func Decode(data []byte, fields []Field, opts Options) ([]Record, int, error) {
	if opts.Start < 0 || opts.Start > len(data) {
		return nil, 0, ErrStartOutOfRange
	}
	if err := validate(fields); err != nil {
		return nil, 0, err
	}

	end := len(data)
	if opts.Length > 0 && opts.Start+opts.Length < end {
		end = opts.Start + opts.Length
	}
	window := data[opts.Start:end]

	records := []Record{}
	pos := 0
	for pos < len(window) && (opts.Count <= 0 || len(records) < opts.Count) {
		rec, width, err := decodeRecord(window[pos:], fields)
		if err != nil {
			return records, pos, err
		}
		if width < 0 {
			logger.Debug("Stopped decoding", "record", len(records), "offset", opts.Start+pos)
			break
		}
		rec.Offset = opts.Start + pos
		records = append(records, rec)
		if width == 0 {
			// a record using no input would repeat forever
			break
		}
		pos += width
	}
	return records, pos, nil
}

// decodeRecord decodes a single record. A negative width means a field failed.
func decodeRecord(data []byte, fields []Field) (Record, int, error) {
	rec := Record{Values: make(map[string]interface{}, len(fields))}
	pos := 0
	for _, f := range fields {
		if f.MaxWidth == 0 {
			if f.HasDefault {
				rec.Values[f.Name] = f.Default
			}
			continue
		}

		offered := data[pos:]
		if len(offered) > f.MaxWidth {
			offered = offered[:f.MaxWidth]
		}
		res := call(f, offered)
		if res.Failed() {
			logger.Trace("Field mismatch", "field", f.Name, "offset", pos)
			return rec, -1, nil
		}
		if res.Width < 0 || res.Width > len(offered) {
			return rec, -1, fmt.Errorf("%w: field %q used %d of %d bytes", ErrInvalidField, f.Name, res.Width, len(offered))
		}

		if f.Kind == Value {
			rec.Values[f.Name] = res.Value
		}
		pos += res.Width
	}
	rec.Length = pos
	return rec, pos, nil
}

// call runs the field decoder, turning a panic into a mismatch.
func call(f Field, b []byte) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("Field decoder panicked", "field", f.Name, "err", r)
			res = Fail()
		}
	}()
	return f.Decode(b)
}
