// Package bids indexes a BIDS derivatives tree and answers entity-based
// queries against it. Only the small slice of the convention this tool needs
// is implemented: filename entities are underscore-separated key-value pairs
// ("sub-CMH0001_model-noddi_desc-aparcaseg_results.tsv"), the final
// dash-free token is the suffix, and the datatype is the name of the file's
// parent directory.
package bids

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// File is one indexed derivative file with its parsed entities.
type File struct {
	// Path is the absolute path of the file.
	Path string

	// Datatype is the parent directory name, e.g. "dwi".
	Datatype string

	// Suffix is the trailing token of the filename, e.g. "results".
	Suffix string

	// Extension includes the leading dot, e.g. ".tsv".
	Extension string

	// Entities holds the key-value pairs parsed from the filename,
	// e.g. {"sub": "CMH0001", "model": "noddi", "desc": "aparcaseg"}.
	Entities map[string]string
}

// Desc returns the file's desc entity, or "" if absent.
func (f File) Desc() string {
	return f.Entities["desc"]
}

// Layout is an index of every entity-named file under a derivatives root.
type Layout struct {
	files []File
}

// NewLayout walks root and indexes all files whose names parse as BIDS
// entity chains. Files that do not parse are skipped silently; derivative
// trees routinely carry logs and JSON sidecars this tool has no use for.
func NewLayout(root string) (*Layout, error) {
	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		f, ok := parseFilename(path)
		if ok {
			files = append(files, f)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking derivatives tree %s: %w", root, err)
	}
	return &Layout{files: files}, nil
}

// Query describes the entity constraints of a Get call. Zero-valued fields
// are unconstrained.
type Query struct {
	Subject   string
	Datatype  string
	Suffix    string
	Extension string

	// Entities constrains arbitrary key-value pairs, e.g. {"model": "noddi"}.
	Entities map[string]string
}

// Get returns all indexed files matching q, in walk order.
func (l *Layout) Get(q Query) []File {
	var out []File
	for _, f := range l.files {
		if q.Subject != "" && f.Entities["sub"] != q.Subject {
			continue
		}
		if q.Datatype != "" && f.Datatype != q.Datatype {
			continue
		}
		if q.Suffix != "" && f.Suffix != q.Suffix {
			continue
		}
		if q.Extension != "" && f.Extension != q.Extension {
			continue
		}
		if !matchEntities(f.Entities, q.Entities) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func matchEntities(have, want map[string]string) bool {
	for k, v := range want {
		if have[k] != v {
			return false
		}
	}
	return true
}

// parseFilename parses a path's basename into a File. It reports false when
// the name is not an entity chain (no "sub-" leading entity or no suffix).
func parseFilename(path string) (File, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	tokens := strings.Split(name, "_")
	if len(tokens) < 2 {
		return File{}, false
	}

	// The final token is the suffix and must not be an entity pair.
	suffix := tokens[len(tokens)-1]
	if suffix == "" || strings.Contains(suffix, "-") {
		return File{}, false
	}

	entities := make(map[string]string, len(tokens)-1)
	for _, tok := range tokens[:len(tokens)-1] {
		key, value, found := strings.Cut(tok, "-")
		if !found || key == "" || value == "" {
			return File{}, false
		}
		entities[key] = value
	}
	if entities["sub"] == "" {
		return File{}, false
	}

	return File{
		Path:      path,
		Datatype:  filepath.Base(filepath.Dir(path)),
		Suffix:    suffix,
		Extension: ext,
		Entities:  entities,
	}, true
}
