package launcher

// Defaults bundles the baseline configuration values the launcher uses
// before the config file and flags override them.

type Defaults struct {
	Scan     ScanDefaults
	Patterns PatternDefaults
	Decode   DecodeDefaults
	Logging  LoggingDefaults
}

// ScanDefaults describe the search window.
type ScanDefaults struct {
	Backward bool //	Scan from the window end towards its start.
	Start    int  //	Window start; -1 picks the buffer edge matching the direction.
	Length   int  //	Window length; -1 runs up to the buffer edge.
	Bits     bool //	Search the bit string instead of the bytes.
}

// PatternDefaults hold the patterns used when a command gets none.
type PatternDefaults struct {
	Separators []string //	Token separators as hex: space, tab, carriage return, line feed.
}

// DecodeDefaults configure the structure decoder.
type DecodeDefaults struct {
	Count int //	Record limit; 0 defers to the layout, which may also leave it unlimited.
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    //	Log level numeric (0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace).
	Format    string //	Log output format (text vs json).
	Color     bool   //	Whether to use ANSI color codes in logs.
}

// DefaultConfig returns a fully populated Defaults instance.

func DefaultConfig() Defaults {
	return Defaults{
		Scan: ScanDefaults{
			Start:  -1,
			Length: -1,
		},
		Patterns: PatternDefaults{
			Separators: []string{"20", "09", "0D", "0A"},
		},
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
	}
}
