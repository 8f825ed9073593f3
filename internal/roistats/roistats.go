// Package roistats parses the per-ROI NODDI result tables produced by
// noddi_reg. Each table row is one region of interest with its masked voxel
// count and the mean of each NODDI metric inside the mask.
package roistats

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// ROI is one region-of-interest row of a results table.
type ROI struct {
	// Name is the region label, e.g. "ctx-lh-precentral".
	Name string

	// MaskedVoxels is the number of voxels contributing to the means.
	MaskedVoxels float64

	// Mean NODDI metrics within the masked region.
	ODMean    float64
	ICVFMean  float64
	ISOVFMean float64
}

// Table is one parsed results file.
type Table struct {
	ROIs []ROI
}

// Column headers required in a results table. Extra columns are ignored.
const (
	colName   = "name"
	colVoxels = "n_vx_masked"
	colODMean = "od_mean"
	colICVF   = "icvf_mean"
	colISOVF  = "isovf_mean"
)

// Load parses the results TSV at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening results table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading results table %s: %w", path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("results table %s is empty", path)
	}

	idx := map[string]int{}
	for i, col := range rows[0] {
		idx[col] = i
	}
	for _, col := range []string{colName, colVoxels, colODMean, colICVF, colISOVF} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("results table %s has no %q column", path, col)
		}
	}

	table := &Table{ROIs: make([]ROI, 0, len(rows)-1)}
	for n, row := range rows[1:] {
		roi, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("results table %s row %d: %w", path, n+2, err)
		}
		table.ROIs = append(table.ROIs, roi)
	}

	return table, nil
}

func parseRow(row []string, idx map[string]int) (ROI, error) {
	field := func(col string) (string, error) {
		i := idx[col]
		if i >= len(row) {
			return "", fmt.Errorf("missing %q field", col)
		}
		return row[i], nil
	}
	number := func(col string) (float64, error) {
		s, err := field(col)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing %q: %w", col, err)
		}
		return v, nil
	}

	name, err := field(colName)
	if err != nil {
		return ROI{}, err
	}
	vx, err := number(colVoxels)
	if err != nil {
		return ROI{}, err
	}
	od, err := number(colODMean)
	if err != nil {
		return ROI{}, err
	}
	icvf, err := number(colICVF)
	if err != nil {
		return ROI{}, err
	}
	isovf, err := number(colISOVF)
	if err != nil {
		return ROI{}, err
	}

	return ROI{Name: name, MaskedVoxels: vx, ODMean: od, ICVFMean: icvf, ISOVFMean: isovf}, nil
}

// FilterGM returns a new table containing only the ROIs mapped to gray
// matter by the tissue-type table. ROIs absent from the table drop out,
// matching a left join followed by a GM filter.
func (t *Table) FilterGM(tissueTypes map[string]string) *Table {
	out := &Table{}
	for _, roi := range t.ROIs {
		if tissueTypes[roi.Name] == "GM" {
			out.ROIs = append(out.ROIs, roi)
		}
	}
	return out
}
