// Package main is the entry point of the policyexport CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/policyexport/internal/cli"
	"github.com/rshade/policyexport/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit code.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	return exitCode(root.ExecuteContext(ctx))
}

// exitCode maps an error returned by the root command to a process exit code.
func exitCode(err error) int {
	return cli.ExitCode(err)
}
