package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/scandlab/noddi-wholebrain/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ParseWholebrain processes the noddi-wholebrain command line. It returns a
// populated app.Config, a boolean indicating if the program should exit
// cleanly, or an ExitError.
func ParseWholebrain(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("noddi-wholebrain", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
noddi-wholebrain - Produces whole-brain NODDI metrics from noddi_reg ROI outputs.

The whole-brain metric of each parcellation is the average of the mean NODDI
metric in each ROI, weighted by the ROI's masked voxel count.

Usage:
  noddi-wholebrain [options] --participants_tsv <path> --noddi_reg_dir <path> --output_dir <path>

Options:
`)
		flagSet.PrintDefaults()
	}

	participantsFlag := flagSet.String("participants_tsv", "", "Path to the BIDS participants.tsv file.")
	noddiRegFlag := flagSet.String("noddi_reg_dir", "", "Input directory holding noddi_reg derivatives.")
	outputFlag := flagSet.String("output_dir", "", "Output directory for the per-parcellation CSVs.")
	tissueTypesFlag := flagSet.String("tissue_types", "", "Path or URL of the FreeSurfer tissue-type template (overrides the study file).")
	configFlag := flagSet.String("config", "", "Path to an optional HCL study file.")
	debugFlag := flagSet.Bool("debug", false, "Debug logging (shorthand for --log-level debug).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat, logLevel, err := validateLogFlags(*logFormatFlag, *logLevelFlag)
	if err != nil {
		return nil, false, err
	}
	if *debugFlag {
		logLevel = "debug"
	}

	config, err := app.NewConfig(app.Config{
		ParticipantsTSV: *participantsFlag,
		NoddiRegDir:     *noddiRegFlag,
		OutputDir:       *outputFlag,
		TissueTypes:     *tissueTypesFlag,
		StudyFile:       *configFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}

// ParseLaunch processes the noddi-launch command line.
func ParseLaunch(args []string, output io.Writer) (*app.LaunchConfig, bool, error) {
	flagSet := flag.NewFlagSet("noddi-launch", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
noddi-launch - Resolves study paths and dispatches the whole-brain processor.

Derives the participants table, noddi_reg input directory, and output
directory from the base directory's fixed BIDS layout, creates the output
directory if needed, then runs the processing entry point with those three
paths. The entry point's exit code becomes this process's exit code.

Usage:
  noddi-launch [options] [BASE_DIR]

Arguments:
  BASE_DIR
    Study base directory. Defaults to the current working directory.

Options:
`)
		flagSet.PrintDefaults()
	}

	baseDirFlag := flagSet.String("base-dir", "", "Study base directory (same as the positional argument).")
	entrypointFlag := flagSet.String("entrypoint", "", "Processing entry point command, whitespace-separated (overrides the study file).")
	configFlag := flagSet.String("config", "", "Path to an optional HCL study file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	baseDir := *baseDirFlag
	if baseDir == "" && flagSet.NArg() > 0 {
		baseDir = flagSet.Arg(0)
	}

	logFormat, logLevel, err := validateLogFlags(*logFormatFlag, *logLevelFlag)
	if err != nil {
		return nil, false, err
	}

	return &app.LaunchConfig{
		BaseDir:    baseDir,
		Entrypoint: strings.Fields(*entrypointFlag),
		StudyFile:  *configFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	}, false, nil
}

// validateLogFlags normalizes and validates the shared logging flags.
func validateLogFlags(format, level string) (string, string, error) {
	format = strings.ToLower(format)
	if format != "text" && format != "json" {
		return "", "", &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	level = strings.ToLower(level)
	switch level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return "", "", &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	return format, level, nil
}
