package main

import (
	"fmt"
	"os"

	"github.com/rony4d/go-binscan/cmd/binscan/launcher"
)

func main() {

	// Call into the launcher and capture any resulting error
	if err := launcher.Launch(os.Args); err != nil {

		// Report the issue to stderr so stdout only carries results
		fmt.Fprintln(os.Stderr, "Error:", err)

		// Exit with a non-zero status code to indicate failure
		os.Exit(1)
	}

}
