package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scandlab/noddi-wholebrain/internal/app"
	"github.com/scandlab/noddi-wholebrain/internal/cli"
)

// main is the entrypoint for the whole-brain processor.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.ParseWholebrain(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	wholebrainApp, err := app.NewApp(outW, appConfig)
	if err != nil {
		return err
	}

	return wholebrainApp.Run(context.Background())
}
