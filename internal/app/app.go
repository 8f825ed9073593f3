package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/scandlab/noddi-wholebrain/internal/config"
)

// App encapsulates the whole-brain processor's dependencies, configuration,
// and lifecycle.
type App struct {
	logW   io.Writer
	logger *slog.Logger
	config *Config
	study  *config.File
}

// NewApp is the constructor for the processing application. It returns a
// fully initialized App instance with its own isolated logger and the study
// file loaded, or an error on a config failure.
func NewApp(logW io.Writer, appConfig *Config) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	study, err := loadStudy(appConfig.StudyFile)
	if err != nil {
		return nil, err
	}
	logger.Debug("Study configuration resolved.", "study_file", appConfig.StudyFile)

	return &App{
		logW:   logW,
		logger: logger,
		config: appConfig,
		study:  study,
	}, nil
}

// loadStudy reads the optional study file, falling back to defaults when no
// path is given.
func loadStudy(path string) (*config.File, error) {
	if path == "" {
		return config.Default(), nil
	}
	study, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return study, nil
}
