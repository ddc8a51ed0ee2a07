package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// DecodeFlags are used by the decode command.
func DecodeFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "layout",
			Usage: "YAML record layout",
		},
		cli.StringFlag{
			Name:  "preset",
			Usage: "Built-in layout used when --layout is not given (header, startxref, subsection, xref)",
		},
		cli.IntFlag{
			Name:  "count",
			Usage: "Maximum number of records to decode (0 = layout default, then unlimited)",
		},
	}
}
