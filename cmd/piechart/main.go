package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/piechart/internal/cli"
	pcerrors "github.com/matzehuels/piechart/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps input errors to 2 so scripts can tell bad data from
// runtime failures.
func exitCode(err error) int {
	if pcerrors.IsInvalid(err) || pcerrors.Is(err, pcerrors.ErrCodeNotFound) {
		return 2
	}
	return 1
}
