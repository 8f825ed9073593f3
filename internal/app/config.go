package app

import "errors"

// Config holds everything the whole-brain processor needs to run.
type Config struct {
	// The three resolved study paths, matching the named CLI arguments.
	ParticipantsTSV string
	NoddiRegDir     string
	OutputDir       string

	// TissueTypes is the FreeSurfer tissue-type template source (path or
	// URL). Empty falls back to the study file, then to the template shipped
	// under the working directory's study layout.
	TissueTypes string

	// StudyFile is an optional HCL study file path.
	StudyFile string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config. The three path arguments are required; the
// subprocess contract offers no defaults for them.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ParticipantsTSV == "" {
		return nil, errors.New("participants_tsv is a required argument and cannot be empty")
	}
	if cfg.NoddiRegDir == "" {
		return nil, errors.New("noddi_reg_dir is a required argument and cannot be empty")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("output_dir is a required argument and cannot be empty")
	}

	return &cfg, nil
}

// LaunchConfig holds everything the launcher needs to run.
type LaunchConfig struct {
	// BaseDir roots the fixed study layout. Empty means the process working
	// directory.
	BaseDir string

	// Entrypoint overrides the study file's processing entry point.
	Entrypoint []string

	// StudyFile is an optional HCL study file path.
	StudyFile string

	LogFormat string
	LogLevel  string
}
