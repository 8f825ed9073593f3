// Package wholebrain reduces per-ROI NODDI tables to whole-brain metrics.
// The whole-brain value of each metric is the average of the per-ROI means
// weighted by each region's masked voxel count, so large regions contribute
// proportionally more than small ones.
package wholebrain

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/scandlab/noddi-wholebrain/internal/roistats"
)

// Metrics holds the voxel-weighted whole-brain averages of one parcellation.
type Metrics struct {
	WholeOD    float64
	WholeICVF  float64
	WholeISOVF float64
}

// Compute reduces a results table to whole-brain metrics. A table whose
// masked voxel counts sum to zero has no defined average and is an error.
func Compute(table *roistats.Table) (Metrics, error) {
	var totalVx, od, icvf, isovf float64
	for _, roi := range table.ROIs {
		totalVx += roi.MaskedVoxels
		od += roi.ODMean * roi.MaskedVoxels
		icvf += roi.ICVFMean * roi.MaskedVoxels
		isovf += roi.ISOVFMean * roi.MaskedVoxels
	}
	if totalVx == 0 {
		return Metrics{}, fmt.Errorf("no masked voxels across %d ROIs", len(table.ROIs))
	}
	return Metrics{
		WholeOD:    od / totalVx,
		WholeICVF:  icvf / totalVx,
		WholeISOVF: isovf / totalVx,
	}, nil
}

// Record is one participant's whole-brain metrics for one parcellation.
type Record struct {
	ParticipantID string
	Parcellation  string
	Metrics
}

// WriteCSVs groups records by parcellation and writes one
// desc-<parcellation>_wholebrainnoddi.csv per group into outputDir.
// Within a file, records keep their input order; files are written in
// sorted parcellation order. Returns the written file paths.
func WriteCSVs(outputDir string, records []Record) ([]string, error) {
	groups := map[string][]Record{}
	for _, rec := range records {
		groups[rec.Parcellation] = append(groups[rec.Parcellation], rec)
	}

	parcellations := make([]string, 0, len(groups))
	for parc := range groups {
		parcellations = append(parcellations, parc)
	}
	sort.Strings(parcellations)

	paths := make([]string, 0, len(parcellations))
	for _, parc := range parcellations {
		path := filepath.Join(outputDir, fmt.Sprintf("desc-%s_wholebrainnoddi.csv", parc))
		if err := writeGroup(path, groups[parc]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeGroup(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	w := csv.NewWriter(f)
	rows := [][]string{{"participant_id", "whole_od", "whole_icvf", "whole_isovf"}}
	for _, rec := range records {
		rows = append(rows, []string{
			rec.ParticipantID,
			formatFloat(rec.WholeOD),
			formatFloat(rec.WholeICVF),
			formatFloat(rec.WholeISOVF),
		})
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
