package launcher

import (
	"os"

	"github.com/ethereum/go-ethereum/log"
)

var logger = log.New("module", "launcher")

// setupLogging installs the root log handler. Logs go to stderr so that
// command output on stdout stays machine readable.
func setupLogging(cfg LoggingConfig) {
	format := log.TerminalFormat(cfg.Color)
	if cfg.Format == "json" {
		format = log.JSONFormat()
	}
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(cfg.Verbosity), log.StreamHandler(os.Stderr, format)))
}
