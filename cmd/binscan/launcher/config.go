// This file maps the CLI context to the Config struct.

package launcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"
)

var (
	// ErrLogFormat is returned for a log format other than text or json.
	ErrLogFormat = errors.New("launcher: unknown log format")
	// ErrVerbosity is returned for a verbosity outside 0..5.
	ErrVerbosity = errors.New("launcher: verbosity out of range")
)

// Config aggregates everything a command needs.
type Config struct {
	Scan     ScanConfig    `yaml:"scan"`
	Patterns PatternConfig `yaml:"patterns"`
	Decode   DecodeConfig  `yaml:"decode"`
	Output   OutputConfig  `yaml:"output"`
	Logging  LoggingConfig `yaml:"logging"`
}

type ScanConfig struct {
	Backward bool `yaml:"backward"`
	Start    int  `yaml:"start"`
	Length   int  `yaml:"length"`
	Bits     bool `yaml:"bits"`
}

// PatternConfig holds the command patterns in their textual form:
// hex for byte scans, 0/1 text for bit scans.
type PatternConfig struct {
	Find       []string `yaml:"find"`
	Separators []string `yaml:"separators"`
	Left       []string `yaml:"left"`
	Right      []string `yaml:"right"`
	Search     string   `yaml:"search"`
	With       string   `yaml:"with"`
}

type DecodeConfig struct {
	Layout string `yaml:"layout"`
	Preset string `yaml:"preset"`
	Count  int    `yaml:"count"`
}

type OutputConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Verbosity int    `yaml:"verbosity"`
	Format    string `yaml:"format"`
	Color     bool   `yaml:"color"`
}

func defaultConfig() Config {
	d := DefaultConfig()
	return Config{
		Scan: ScanConfig{
			Backward: d.Scan.Backward,
			Start:    d.Scan.Start,
			Length:   d.Scan.Length,
			Bits:     d.Scan.Bits,
		},
		Patterns: PatternConfig{
			Separators: append([]string(nil), d.Patterns.Separators...),
		},
		Decode: DecodeConfig{
			Count: d.Decode.Count,
		},
		Logging: LoggingConfig{
			Verbosity: d.Logging.Verbosity,
			Format:    d.Logging.Format,
			Color:     d.Logging.Color,
		},
	}
}

// MakeAllConfigs merges defaults, config-file values, and CLI overrides into a
// single config struct.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if file := ctx.String("config"); file != "" {
		if err := loadConfigFile(resolvePath(file), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	applyCLIOverrides(ctx, &cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrLogFormat, cfg.Logging.Format)
	}
	if cfg.Logging.Verbosity < 0 || cfg.Logging.Verbosity > 5 {
		return fmt.Errorf("%w: %d", ErrVerbosity, cfg.Logging.Verbosity)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Config-file / CLI wiring
// -----------------------------------------------------------------------------

func loadConfigFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, cfg)
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if ctx.IsSet("backward") {
		cfg.Scan.Backward = ctx.Bool("backward")
	}
	if ctx.IsSet("start") {
		cfg.Scan.Start = ctx.Int("start")
	}
	if ctx.IsSet("length") {
		cfg.Scan.Length = ctx.Int("length")
	}
	if ctx.IsSet("bits") {
		cfg.Scan.Bits = ctx.Bool("bits")
	}

	if ctx.IsSet("pattern") {
		cfg.Patterns.Find = splitCSV(ctx.String("pattern"))
	}
	if ctx.IsSet("sep") {
		cfg.Patterns.Separators = splitCSV(ctx.String("sep"))
	}
	if ctx.IsSet("left") {
		cfg.Patterns.Left = splitCSV(ctx.String("left"))
	}
	if ctx.IsSet("right") {
		cfg.Patterns.Right = splitCSV(ctx.String("right"))
	}
	if ctx.IsSet("search") {
		cfg.Patterns.Search = strings.TrimSpace(ctx.String("search"))
	}
	if ctx.IsSet("with") {
		cfg.Patterns.With = strings.TrimSpace(ctx.String("with"))
	}

	if ctx.IsSet("out") {
		cfg.Output.Path = resolvePath(ctx.String("out"))
	}
	if ctx.IsSet("layout") {
		cfg.Decode.Layout = resolvePath(ctx.String("layout"))
	}
	if ctx.IsSet("preset") {
		cfg.Decode.Preset = ctx.String("preset")
	}
	if ctx.IsSet("count") {
		cfg.Decode.Count = ctx.Int("count")
	}

	if ctx.IsSet("log.format") {
		cfg.Logging.Format = ctx.String("log.format")
	}
	if ctx.IsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.Int("log.verbosity")
	}
	if ctx.IsSet("log.color") {
		cfg.Logging.Color = ctx.Bool("log.color")
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
