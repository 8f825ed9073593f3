// Package launcher dispatches the whole-brain processing entry point as a
// subprocess. Execution is synchronous and single-shot: the launcher blocks
// until the child exits and surfaces its exit code unchanged. There is no
// retry and no partial-failure handling.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/scandlab/noddi-wholebrain/internal/ctxlog"
)

// Args holds the three resolved paths passed to the entry point as named
// arguments.
type Args struct {
	ParticipantsTSV string
	NoddiRegDir     string
	OutputDir       string
}

// Launcher invokes a processing entry point with resolved study paths.
type Launcher struct {
	// Entrypoint is the argv prefix of the external entry point, e.g.
	// ["noddi-wholebrain"] or ["python3", "noddi_wholebrain.py"]. The three
	// named path arguments are appended to it.
	Entrypoint []string

	// Dir is the working directory for the child process. Empty inherits the
	// launcher's own working directory.
	Dir string
}

// New returns a Launcher for the given entry point argv prefix.
func New(entrypoint []string) *Launcher {
	return &Launcher{Entrypoint: entrypoint}
}

// ExitCodeError reports that the entry point ran but exited non-zero. The
// launcher's own exit status mirrors Code.
type ExitCodeError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("entry point exited with status %d", e.Code)
}

// Run launches the entry point with the three path arguments and blocks
// until it terminates. The child inherits the parent's environment and
// stdio. A non-zero child exit is returned as *ExitCodeError; a failure to
// start the child at all (missing binary, permission) is returned as a
// plain error.
func (l *Launcher) Run(ctx context.Context, args Args) error {
	if len(l.Entrypoint) == 0 {
		return errors.New("launcher: entry point is empty")
	}

	argv := append([]string(nil), l.Entrypoint...)
	argv = append(argv,
		"--participants_tsv", args.ParticipantsTSV,
		"--noddi_reg_dir", args.NoddiRegDir,
		"--output_dir", args.OutputDir,
	)

	logger := ctxlog.FromContext(ctx)
	logger.Info("Dispatching entry point.",
		"argv", argv,
		"participants_tsv", args.ParticipantsTSV,
		"noddi_reg_dir", args.NoddiRegDir,
		"output_dir", args.OutputDir,
	)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = l.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	err := cmd.Run()
	if err == nil {
		logger.Debug("Entry point finished successfully.")
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Error("Entry point exited non-zero.", "code", exitErr.ExitCode())
		return &ExitCodeError{Code: exitErr.ExitCode()}
	}

	return fmt.Errorf("starting entry point %q: %w", argv[0], err)
}
