// Command foodops is the reference host for the simulation kernel: a
// small cobra CLI that loads a scenario file, drives the kernel through a
// fixed number of turns, and writes both a human-readable summary and
// machine-readable results. It exists to exercise the kernel end to end;
// nothing under internal/ imports anything from cmd/foodops.
package main

import (
	"fmt"
	"os"

	"github.com/foodops/foodops-kernel/cmd/foodops/internal/cli"
)

var (
	version = "dev"
)

func main() {
	root := cli.NewRootCommand(version)
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "foodops:", err)
	}
	os.Exit(cli.ExitCode(err))
}
