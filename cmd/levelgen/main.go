package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/levelgen/internal/cli"
	apperrors "github.com/matzehuels/levelgen/pkg/errors"
)

// Exit codes.
const (
	exitError       = 1
	exitInvalid     = 2 // malformed blueprint or arguments
	exitGenFailed   = 3 // every attempt failed
	exitInterrupted = 130
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return loadConfig(cmd, args)
	}

	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, apperrors.UserMessage(err))
	}
	return err
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case apperrors.Is(err, apperrors.ErrCodeGenerationFailed):
		return exitGenFailed
	case apperrors.GetCode(err) != "" && apperrors.GetCode(err) != apperrors.ErrCodeInternal:
		return exitInvalid
	}
	return exitError
}
