// Package participants reads the BIDS participants table. Only the
// participant_id column is consumed; other columns are ignored.
package participants

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// idColumn is the BIDS-mandated header for participant identifiers.
const idColumn = "participant_id"

// Participant is one row of the participants table.
type Participant struct {
	// ID is the full BIDS identifier, e.g. "sub-CMH0001".
	ID string
}

// SubjectLabel returns the BIDS subject label with the "sub-" prefix
// stripped, which is how derivative filenames refer to the participant.
func (p Participant) SubjectLabel() string {
	return strings.TrimPrefix(p.ID, "sub-")
}

// Load reads the participants table at path and returns its participants in
// file order.
func Load(path string) ([]Participant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening participants table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	// BIDS TSVs are not quoted; tolerate stray quotes in free-text columns.
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading participants table %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("participants table %s is empty", path)
	}

	idIdx := -1
	for i, col := range rows[0] {
		if col == idColumn {
			idIdx = i
			break
		}
	}
	if idIdx < 0 {
		return nil, fmt.Errorf("participants table %s has no %q column", path, idColumn)
	}

	list := make([]Participant, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if idIdx >= len(row) {
			continue
		}
		id := strings.TrimSpace(row[idIdx])
		if id == "" {
			continue
		}
		list = append(list, Participant{ID: id})
	}

	if len(list) == 0 {
		return nil, fmt.Errorf("participants table %s has no participants", path)
	}

	return list, nil
}
