package launcher

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-binscan/flags"
	"github.com/rony4d/go-binscan/layouts"
	"github.com/rony4d/go-binscan/structure"
)

var (
	// ErrNoInput is returned when a command is given no input file.
	ErrNoInput = errors.New("launcher: no input file given")
	// ErrNoLayout is returned by decode without a layout file or preset.
	ErrNoLayout = errors.New("launcher: no layout given")
)

// action is a command body. The input file is already read.
type action func(cfg Config, data []byte, out *printer) error

func commands() []cli.Command {
	return []cli.Command{
		{
			Name:      "find",
			Usage:     "List every occurrence of a set of patterns",
			ArgsUsage: "<file>",
			Flags:     flags.Merge(flags.CommonFlags(), flags.WindowFlags(), flags.FindFlags()),
			Action:    run(findCommand),
		},
		{
			Name:      "tokens",
			Usage:     "Split the input at separator patterns",
			ArgsUsage: "<file>",
			Flags:     flags.Merge(flags.CommonFlags(), flags.WindowFlags(), flags.TokenFlags()),
			Action:    run(tokensCommand),
		},
		{
			Name:      "pairs",
			Usage:     "Match opening and closing delimiters",
			ArgsUsage: "<file>",
			Flags:     flags.Merge(flags.CommonFlags(), flags.WindowFlags(), flags.PairFlags()),
			Action:    run(pairsCommand),
		},
		{
			Name:      "replace",
			Usage:     "Replace a pattern and write the result to a file",
			ArgsUsage: "<file>",
			Flags:     flags.Merge(flags.CommonFlags(), flags.WindowFlags(), flags.ReplaceFlags()),
			Action:    run(replaceCommand),
		},
		{
			Name:      "decode",
			Usage:     "Decode records described by a YAML layout",
			ArgsUsage: "<file>",
			Flags:     flags.Merge(flags.CommonFlags(), flags.WindowFlags(), flags.DecodeFlags()),
			Action:    run(decodeCommand),
		},
	}
}

// run builds the configuration, installs logging and reads the input file
// before handing over to the command.
func run(fn action) func(ctx *cli.Context) error {
	return func(ctx *cli.Context) error {
		cfg, err := MakeAllConfigs(ctx)
		if err != nil {
			return err
		}
		setupLogging(cfg.Logging)

		path := ctx.Args().First()
		if path == "" {
			return ErrNoInput
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		logger.Debug("Loaded input", "command", ctx.Command.Name, "path", path, "size", len(data))
		return fn(cfg, data, newPrinter(ctx.App.Writer))
	}
}

func findCommand(cfg Config, data []byte, out *printer) error {
	s, err := newScanner(cfg, data)
	if err != nil {
		return err
	}
	return s.find(cfg, out)
}

func tokensCommand(cfg Config, data []byte, out *printer) error {
	s, err := newScanner(cfg, data)
	if err != nil {
		return err
	}
	return s.tokens(cfg, out)
}

func pairsCommand(cfg Config, data []byte, out *printer) error {
	s, err := newScanner(cfg, data)
	if err != nil {
		return err
	}
	return s.pairs(cfg, out)
}

func replaceCommand(cfg Config, data []byte, out *printer) error {
	if cfg.Output.Path == "" {
		return ErrNoOutput
	}
	s, err := newScanner(cfg, data)
	if err != nil {
		return err
	}
	res, err := s.replace(cfg, out)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Output.Path, res, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("Wrote output", "path", cfg.Output.Path, "size", len(res))
	return nil
}

func decodeCommand(cfg Config, data []byte, out *printer) error {
	layout, err := loadLayout(cfg.Decode)
	if err != nil {
		return err
	}
	layouts.ApplyPreset(layout, &structure.Layout{Count: cfg.Decode.Count})

	fields, err := layout.Build()
	if err != nil {
		return err
	}
	opts := structure.Options{Count: layout.Count}
	if cfg.Scan.Start > 0 {
		opts.Start = cfg.Scan.Start
	}
	if cfg.Scan.Length > 0 {
		opts.Length = cfg.Scan.Length
	}

	records, used, err := structure.Decode(data, fields, opts)
	if err != nil {
		return err
	}
	for _, r := range records {
		out.emit("record",
			"layout", layout.Name,
			"offset", r.Offset,
			"length", r.Length,
			"fields", fieldNames(r),
			"values", r.Values)
	}
	out.emit("summary", "records", len(records), "used", used)
	return out.Err()
}

// loadLayout prefers a layout file over a built-in preset.
func loadLayout(cfg DecodeConfig) (*structure.Layout, error) {
	switch {
	case cfg.Layout != "":
		return structure.LoadLayout(cfg.Layout)
	case cfg.Preset != "":
		return layouts.GetPresetByName(cfg.Preset)
	default:
		return nil, ErrNoLayout
	}
}

func fieldNames(r structure.Record) []string {
	names := make([]string, 0, len(r.Values))
	for k := range r.Values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
