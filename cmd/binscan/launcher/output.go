package launcher

import (
	"fmt"
	"io"

	"github.com/tidwall/sjson"

	"github.com/rony4d/go-binscan/utils/fast"
)

// printer writes command results as JSON lines. The first error sticks and
// suppresses further output.
type printer struct {
	w   io.Writer
	err error
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

// emit writes {"kind": kind, k1: v1, ...}. The key/value list follows the
// convention of the log package.
func (p *printer) emit(kind string, ctx ...interface{}) {
	if p.err != nil {
		return
	}
	line, err := sjson.Set("", "kind", kind)
	for i := 0; err == nil && i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			err = fmt.Errorf("launcher: output key %v is not a string", ctx[i])
			break
		}
		line, err = sjson.Set(line, key, jsonValue(ctx[i+1]))
	}
	if err != nil {
		p.err = err
		return
	}
	_, p.err = fmt.Fprintln(p.w, line)
}

func (p *printer) Err() error {
	return p.err
}

// jsonValue renders raw bytes as Latin-1 text instead of base64.
func jsonValue(v interface{}) interface{} {
	switch v := v.(type) {
	case []byte:
		return fast.Wrap(v).Text(0, -1)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, x := range v {
			out[k] = jsonValue(x)
		}
		return out
	default:
		return v
	}
}
