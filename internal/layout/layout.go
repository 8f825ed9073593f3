// Package layout derives the fixed on-disk locations of a ScanD study from
// its base directory. The relative arrangement below follows the BIDS
// convention for raw data and derivatives and is identical for every study,
// so only the base directory is configurable.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// participantsRel locates the BIDS participants table under the base dir.
	participantsRel = "data/local/bids/participants.tsv"

	// noddiRegRel locates the noddi_reg derivatives produced upstream.
	noddiRegRel = "data/local/derivatives/noddi_reg"

	// outputRel locates the whole-brain output derivatives written by this tool.
	outputRel = "data/local/derivatives/noddi_wholebrain"

	// tissueTypesRel locates the FreeSurfer tissue-type template shipped with
	// the study. Overridable via config.
	tissueTypesRel = "templates/desc-FreeSurferAll_dseg_with_tissue_type.tsv"
)

// Layout resolves study paths relative to a single base directory. All
// derived paths are subpaths of that base.
type Layout struct {
	base string
}

// New returns a Layout rooted at base. An empty base resolves to the current
// working directory. The base is made absolute so the derived paths remain
// stable if the process later changes directory.
func New(base string) (Layout, error) {
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Layout{}, fmt.Errorf("resolving working directory: %w", err)
		}
		base = cwd
	}

	abs, err := filepath.Abs(base)
	if err != nil {
		return Layout{}, fmt.Errorf("resolving base directory %q: %w", base, err)
	}

	return Layout{base: abs}, nil
}

// Base returns the absolute base directory.
func (l Layout) Base() string {
	return l.base
}

// ParticipantsTSV returns the path of the BIDS participants table.
func (l Layout) ParticipantsTSV() string {
	return filepath.Join(l.base, filepath.FromSlash(participantsRel))
}

// NoddiRegDir returns the noddi_reg derivatives input directory.
func (l Layout) NoddiRegDir() string {
	return filepath.Join(l.base, filepath.FromSlash(noddiRegRel))
}

// OutputDir returns the noddi_wholebrain output directory.
func (l Layout) OutputDir() string {
	return filepath.Join(l.base, filepath.FromSlash(outputRel))
}

// TissueTypesTSV returns the default tissue-type template path.
func (l Layout) TissueTypesTSV() string {
	return filepath.Join(l.base, filepath.FromSlash(tissueTypesRel))
}

// EnsureOutputDir creates the output directory, including any missing
// parents. It succeeds if the directory already exists and fails if the path
// is occupied by something that is not a directory.
func (l Layout) EnsureOutputDir() error {
	dir := l.OutputDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}
