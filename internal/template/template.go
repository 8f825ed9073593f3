// Package template loads the FreeSurfer tissue-type template table that maps
// ROI names to tissue classes. The table may live on disk next to the study
// or be served over HTTP from a shared template host.
package template

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/scandlab/noddi-wholebrain/internal/ctxlog"
)

// TissueTypes maps an ROI name to its tissue class, e.g. "GM" or "WM".
type TissueTypes map[string]string

// fetchTimeout bounds the HTTP template fetch.
const fetchTimeout = 30 * time.Second

// Load reads the tissue-type table from source, which is either a local
// file path or an http(s) URL.
func Load(ctx context.Context, source string) (TissueTypes, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return loadURL(ctx, source)
	}
	return loadFile(source)
}

func loadFile(path string) (TissueTypes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tissue-type template: %w", err)
	}
	defer f.Close()
	return parse(f, path)
}

func loadURL(ctx context.Context, url string) (TissueTypes, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Fetching tissue-type template.", "url", url)

	client := resty.New().SetTimeout(fetchTimeout)
	defer client.Close()

	res, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching tissue-type template %s: %w", url, err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("fetching tissue-type template %s: unexpected status %s", url, res.Status())
	}

	return parse(bytes.NewReader(res.Bytes()), url)
}

// parse reads the two columns this tool needs, name and tissue_type, from a
// TSV stream. Extra columns are ignored.
func parse(r io.Reader, source string) (TissueTypes, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading tissue-type template %s: %w", source, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("tissue-type template %s is empty", source)
	}

	nameIdx, typeIdx := -1, -1
	for i, col := range rows[0] {
		switch col {
		case "name":
			nameIdx = i
		case "tissue_type":
			typeIdx = i
		}
	}
	if nameIdx < 0 || typeIdx < 0 {
		return nil, fmt.Errorf("tissue-type template %s needs name and tissue_type columns", source)
	}

	types := make(TissueTypes, len(rows)-1)
	for _, row := range rows[1:] {
		if nameIdx >= len(row) || typeIdx >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[nameIdx])
		if name == "" {
			continue
		}
		types[name] = strings.TrimSpace(row[typeIdx])
	}

	return types, nil
}
