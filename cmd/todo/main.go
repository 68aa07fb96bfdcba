package main

import (
	"os"

	"github.com/Makepad-fr/taskbin/internal/cli"
)

func main() {
	// Hand the arguments to the command tree; it owns flags and exit codes.
	os.Exit(cli.Run(os.Args[1:], cli.Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}))
}
