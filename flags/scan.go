package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// WindowFlags restrict the region a command searches.
func WindowFlags() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{
			Name:  "backward",
			Usage: "Scan from the end of the window towards its start",
		},
		cli.IntFlag{
			Name:  "start",
			Usage: "Window start position (-1 = buffer edge in the scan direction)",
			Value: -1,
		},
		cli.IntFlag{
			Name:  "length",
			Usage: "Window length (-1 = up to the buffer edge)",
			Value: -1,
		},
		cli.BoolFlag{
			Name:  "bits",
			Usage: "Treat the input as a bit string; patterns are written as 0/1 text",
		},
	}
}

// FindFlags are used by the find command.
func FindFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "pattern",
			Usage: "Comma-separated list of patterns to look for",
		},
	}
}

// TokenFlags are used by the tokens command.
func TokenFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "sep",
			Usage: "Comma-separated list of separator patterns (default: ASCII whitespace)",
		},
	}
}

// PairFlags are used by the pairs command.
func PairFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "left",
			Usage: "Opening delimiter(s), comma-separated",
		},
		cli.StringFlag{
			Name:  "right",
			Usage: "Closing delimiter(s), comma-separated",
		},
	}
}

// ReplaceFlags are used by the replace command.
func ReplaceFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "search",
			Usage: "Pattern to replace",
		},
		cli.StringFlag{
			Name:  "with",
			Usage: "Replacement pattern (empty removes the occurrences)",
		},
		cli.StringFlag{
			Name:  "out",
			Usage: "File receiving the rewritten input",
		},
	}
}
