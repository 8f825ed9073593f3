package app

import (
	"context"
	"fmt"
	"os"

	"github.com/scandlab/noddi-wholebrain/internal/bids"
	"github.com/scandlab/noddi-wholebrain/internal/ctxlog"
	"github.com/scandlab/noddi-wholebrain/internal/layout"
	"github.com/scandlab/noddi-wholebrain/internal/participants"
	"github.com/scandlab/noddi-wholebrain/internal/roistats"
	"github.com/scandlab/noddi-wholebrain/internal/template"
	"github.com/scandlab/noddi-wholebrain/internal/wholebrain"
)

// freesurferDesc marks the parcellation whose tables mix tissue classes and
// must be reduced to gray matter before averaging.
const freesurferDesc = "aparcaseg"

// Run executes the whole-brain pipeline: read the participants table, index
// the noddi_reg tree, aggregate each participant's ROI tables into
// whole-brain metrics, and write one CSV per parcellation.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	list, err := participants.Load(a.config.ParticipantsTSV)
	if err != nil {
		return err
	}
	a.logger.Info("Participants table loaded.", "path", a.config.ParticipantsTSV, "count", len(list))

	index, err := bids.NewLayout(a.config.NoddiRegDir)
	if err != nil {
		return err
	}
	a.logger.Debug("Derivatives tree indexed.", "root", a.config.NoddiRegDir)

	if err := os.MkdirAll(a.config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", a.config.OutputDir, err)
	}

	var records []wholebrain.Record
	var tissueTypes template.TissueTypes

	for _, participant := range list {
		files := index.Get(bids.Query{
			Subject:   participant.SubjectLabel(),
			Datatype:  "dwi",
			Suffix:    "results",
			Extension: ".tsv",
			Entities:  map[string]string{"model": "noddi"},
		})
		if len(files) == 0 {
			a.logger.Error("No noddi_reg results found.", "participant", participant.ID)
			continue
		}

		for _, file := range files {
			table, err := roistats.Load(file.Path)
			if err != nil {
				return err
			}

			if file.Desc() == freesurferDesc {
				if tissueTypes == nil {
					tissueTypes, err = template.Load(ctx, a.tissueTypesSource())
					if err != nil {
						return err
					}
				}
				table = table.FilterGM(tissueTypes)
			}

			metrics, err := wholebrain.Compute(table)
			if err != nil {
				a.logger.Error("Skipping unusable results table.",
					"participant", participant.ID, "path", file.Path, "error", err)
				continue
			}

			records = append(records, wholebrain.Record{
				ParticipantID: participant.ID,
				Parcellation:  file.Desc(),
				Metrics:       metrics,
			})
		}
	}

	paths, err := wholebrain.WriteCSVs(a.config.OutputDir, records)
	if err != nil {
		return err
	}
	a.logger.Info("Whole-brain metrics written.", "files", len(paths), "records", len(records))

	a.logger.Debug("App.Run method finished.")
	return nil
}

// tissueTypesSource resolves the tissue-type template source: CLI flag, then
// study file, then the template shipped under the study layout.
func (a *App) tissueTypesSource() string {
	if a.config.TissueTypes != "" {
		return a.config.TissueTypes
	}
	if a.study.Study.TissueTypes != "" {
		return a.study.Study.TissueTypes
	}
	l, err := layout.New(a.study.Study.BaseDir)
	if err != nil {
		// Layout resolution only fails when the working directory is gone;
		// let the template open fail with the relative path instead.
		return "templates/desc-FreeSurferAll_dseg_with_tissue_type.tsv"
	}
	return l.TissueTypesTSV()
}
