package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scandlab/noddi-wholebrain/internal/app"
	"github.com/scandlab/noddi-wholebrain/internal/cli"
	"github.com/scandlab/noddi-wholebrain/internal/launcher"
)

// main is the entrypoint for the launcher. It mirrors the entry point's exit
// code so schedulers see the processing outcome, not the launcher's.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		var codeErr *launcher.ExitCodeError
		if errors.As(err, &codeErr) {
			os.Exit(codeErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	launchConfig, shouldExit, err := cli.ParseLaunch(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	launchApp, err := app.NewLaunchApp(outW, launchConfig)
	if err != nil {
		return err
	}

	return launchApp.Run(context.Background())
}
