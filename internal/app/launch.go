package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/scandlab/noddi-wholebrain/internal/config"
	"github.com/scandlab/noddi-wholebrain/internal/ctxlog"
	"github.com/scandlab/noddi-wholebrain/internal/launcher"
	"github.com/scandlab/noddi-wholebrain/internal/layout"
)

// LaunchApp encapsulates the launcher's dependencies and lifecycle. Its run
// is a straight-line sequence: resolve paths, ensure the output directory,
// dispatch the entry point.
type LaunchApp struct {
	logger *slog.Logger
	config *LaunchConfig
	study  *config.File
}

// NewLaunchApp is the constructor for the launcher application.
func NewLaunchApp(logW io.Writer, launchConfig *LaunchConfig) (*LaunchApp, error) {
	logger := newLogger(launchConfig.LogLevel, launchConfig.LogFormat, logW)

	study, err := loadStudy(launchConfig.StudyFile)
	if err != nil {
		return nil, err
	}

	return &LaunchApp{
		logger: logger,
		config: launchConfig,
		study:  study,
	}, nil
}

// Run resolves the three study paths from the base directory, creates the
// output directory (parents included, idempotent), and dispatches the
// processing entry point with the paths as named arguments. It blocks until
// the entry point terminates; a non-zero child exit comes back as
// *launcher.ExitCodeError so the caller can mirror the code.
func (a *LaunchApp) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	baseDir := a.config.BaseDir
	if baseDir == "" {
		baseDir = a.study.Study.BaseDir
	}
	l, err := layout.New(baseDir)
	if err != nil {
		return err
	}
	a.logger.Info("Study paths resolved.",
		"base_dir", l.Base(),
		"participants_tsv", l.ParticipantsTSV(),
		"noddi_reg_dir", l.NoddiRegDir(),
		"output_dir", l.OutputDir(),
	)

	if err := l.EnsureOutputDir(); err != nil {
		return err
	}

	entrypoint := a.config.Entrypoint
	if len(entrypoint) == 0 {
		entrypoint = a.study.Launcher.Entrypoint
	}

	return launcher.New(entrypoint).Run(ctx, launcher.Args{
		ParticipantsTSV: l.ParticipantsTSV(),
		NoddiRegDir:     l.NoddiRegDir(),
		OutputDir:       l.OutputDir(),
	})
}
