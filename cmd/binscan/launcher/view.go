package launcher

import (
	"errors"
	"fmt"

	"github.com/rony4d/go-binscan/seq"
	"github.com/rony4d/go-binscan/utils/bits"
	"github.com/rony4d/go-binscan/utils/fast"
)

var (
	// ErrNoPatterns is returned when a command is run without the patterns it needs.
	ErrNoPatterns = errors.New("launcher: no patterns given")
	// ErrNoOutput is returned by replace without an output file.
	ErrNoOutput = errors.New("launcher: no output file given")
)

// scanner runs the search commands over either the byte or the bit view of the input.
type scanner interface {
	find(cfg Config, out *printer) error
	tokens(cfg Config, out *printer) error
	pairs(cfg Config, out *printer) error
	replace(cfg Config, out *printer) ([]byte, error)
}

type view[P, V any] struct {
	cursor *seq.Cursor[P, V]
	parse  func(string) (P, error)
	render func(V) string
	bytes  func() []byte
}

func newScanner(cfg Config, data []byte) (scanner, error) {
	window := seq.Config{
		Backward: cfg.Scan.Backward,
		Start:    cfg.Scan.Start,
		Length:   cfg.Scan.Length,
	}
	if cfg.Scan.Bits {
		c, err := seq.NewBitCursor(bits.FromBytes(data), window)
		if err != nil {
			return nil, err
		}
		return &view[*bits.Buffer, *bits.Buffer]{
			cursor: c.Cursor,
			parse:  bits.FromText,
			render: (*bits.Buffer).String,
			bytes:  func() []byte { return c.Buffer().Bytes() },
		}, nil
	}

	c, err := seq.NewByteCursor(fast.Wrap(data), window)
	if err != nil {
		return nil, err
	}
	return &view[*fast.Buffer, *fast.Buffer]{
		cursor: c.Cursor,
		parse:  fast.FromHex,
		render: func(b *fast.Buffer) string { return b.Hex(0, -1) },
		bytes:  func() []byte { return c.Buffer().Bytes() },
	}, nil
}

func (v *view[P, V]) patterns(texts []string) ([]P, error) {
	if len(texts) == 0 {
		return nil, ErrNoPatterns
	}
	out := make([]P, len(texts))
	for i, t := range texts {
		p, err := v.parse(t)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", t, err)
		}
		out[i] = p
	}
	return out, nil
}

func (v *view[P, V]) find(cfg Config, out *printer) error {
	ps, err := v.patterns(cfg.Patterns.Find)
	if err != nil {
		return err
	}
	for _, m := range v.cursor.FindAllIn(ps) {
		out.emit("match",
			"pattern", cfg.Patterns.Find[m.ID],
			"start", m.Position-m.Length,
			"end", m.Position)
	}
	return out.Err()
}

// tokens walks the window with the cursor, so --backward lists tokens from the end.
func (v *view[P, V]) tokens(cfg Config, out *printer) error {
	seps, err := v.patterns(cfg.Patterns.Separators)
	if err != nil {
		return err
	}
	n := 0
	for v.cursor.Length() > 0 {
		tok := v.cursor.FindFirstNotIn(seps, seq.AnyGap)
		value := v.render(tok.Value)
		if value == "" {
			continue
		}
		out.emit("token", "index", n, "value", value)
		n++
	}
	logger.Debug("Tokenized input", "tokens", n)
	return out.Err()
}

func (v *view[P, V]) pairs(cfg Config, out *printer) error {
	ls, err := v.patterns(cfg.Patterns.Left)
	if err != nil {
		return err
	}
	rs, err := v.patterns(cfg.Patterns.Right)
	if err != nil {
		return err
	}

	if len(ls) == 1 && len(rs) == 1 {
		for _, p := range v.cursor.FindPairedPatterns(ls[0], rs[0], seq.AnyGap) {
			out.emit("pair", "left", p.Left, "right", p.Right)
		}
		return out.Err()
	}
	for _, p := range v.cursor.FindPairedArrays(ls, rs, seq.AnyGap) {
		out.emit("pair",
			"left", p.Left.Position,
			"right", p.Right.Position,
			"open", cfg.Patterns.Left[p.Left.ID],
			"close", cfg.Patterns.Right[p.Right.ID])
	}
	return out.Err()
}

func (v *view[P, V]) replace(cfg Config, out *printer) ([]byte, error) {
	if cfg.Patterns.Search == "" {
		return nil, ErrNoPatterns
	}
	search, err := v.parse(cfg.Patterns.Search)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", cfg.Patterns.Search, err)
	}
	repl, err := v.parse(cfg.Patterns.With)
	if err != nil {
		return nil, fmt.Errorf("replacement %q: %w", cfg.Patterns.With, err)
	}

	rep := v.cursor.ReplacePattern(search, repl)
	out.emit("replace",
		"count", len(rep.SearchPositions),
		"positions", rep.ReplacePositions,
		"size", v.cursor.Searcher().Len())
	return v.bytes(), out.Err()
}
