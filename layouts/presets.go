package layouts

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rony4d/go-binscan/structure"
)

// Package layouts bundles record layouts for common PDF structures so a decode
// run can name one instead of shipping a YAML file.
//
// Usage:
//   l, _ := layouts.GetPresetByName("xref")
//   fields, _ := l.Build()
//   records, used, _ := structure.Decode(data, fields, structure.Options{})

// ErrUnknownPreset is returned for a preset name that is not registered.
var ErrUnknownPreset = errors.New("layouts: unknown preset")

var lineEnd = []string{"\r\n", "\n", "\r"}

// XrefPreset decodes the fixed 20-byte entries of a cross-reference table:
// a 10-digit offset, a 5-digit generation, n or f, and a two-byte line ending.
func XrefPreset() *structure.Layout {
	return &structure.Layout{
		Name: "xref",
		Fields: []structure.FieldSpec{
			{Name: "offset", Type: "digits", Width: 10},
			{Type: "expect", Values: []string{" "}},
			{Name: "generation", Type: "digits", Width: 5},
			{Type: "expect", Values: []string{" "}},
			{Name: "state", Type: "oneof", Choices: map[string]string{"n": "used", "f": "free"}},
			{Type: "expect", Values: []string{"\r\n", " \n", " \r"}},
		},
	}
}

// SubsectionPreset decodes the "first count" line opening an xref subsection.
func SubsectionPreset() *structure.Layout {
	return &structure.Layout{
		Name:  "subsection",
		Count: 1,
		Fields: []structure.FieldSpec{
			{Name: "first", Type: "digits", Width: 10},
			{Type: "skip", Width: 4, Values: []string{" "}},
			{Name: "count", Type: "digits", Width: 10},
			{Type: "skip", Width: 4, Values: []string{" "}},
			{Type: "expect", Values: lineEnd},
		},
	}
}

// HeaderPreset decodes the "%PDF-M.m" file header line.
func HeaderPreset() *structure.Layout {
	return &structure.Layout{
		Name:  "header",
		Count: 1,
		Fields: []structure.FieldSpec{
			{Type: "expect", Values: []string{"%PDF-"}},
			{Name: "major", Type: "digits", Width: 2},
			{Type: "expect", Values: []string{"."}},
			{Name: "minor", Type: "digits", Width: 2},
			{Type: "expect", Values: lineEnd},
		},
	}
}

// StartxrefPreset decodes the "startxref" trailer line and the offset after it.
func StartxrefPreset() *structure.Layout {
	return &structure.Layout{
		Name:  "startxref",
		Count: 1,
		Fields: []structure.FieldSpec{
			{Type: "expect", Values: []string{"startxref"}},
			{Type: "expect", Values: lineEnd},
			{Name: "offset", Type: "digits", Width: 20},
		},
	}
}

var presets = map[string]func() *structure.Layout{
	"xref":       XrefPreset,
	"subsection": SubsectionPreset,
	"header":     HeaderPreset,
	"startxref":  StartxrefPreset,
}

// Names lists the registered presets in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPresetByName looks up a preset by its string identifier. Every call returns
// a fresh layout, so callers may modify it.
func GetPresetByName(name string) (*structure.Layout, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %v)", ErrUnknownPreset, name, Names())
	}
	return build(), nil
}

// ApplyPreset overlays the non-zero parts of preset onto target.
func ApplyPreset(target *structure.Layout, preset *structure.Layout) {
	if preset.Name != "" {
		target.Name = preset.Name
	}
	if preset.Count > 0 {
		target.Count = preset.Count
	}
	if len(preset.Fields) > 0 {
		target.Fields = append([]structure.FieldSpec(nil), preset.Fields...)
	}
}
