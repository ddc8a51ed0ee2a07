package launcher

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-binscan/flags"
)

var app = newApp()

func newApp() *cli.App {
	a := flags.NewApp()
	a.Commands = commands()
	return a
}

// Launch parses the command line and runs the selected command.
func Launch(args []string) error {
	return app.Run(args)
}
