package bids

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touch creates an empty file at root/rel, making parent directories.
func touch(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestParseFilename(t *testing.T) {
	t.Parallel()

	t.Run("full entity chain", func(t *testing.T) {
		f, ok := parseFilename("/d/sub-CMH0001/dwi/sub-CMH0001_ses-01_model-noddi_desc-aparcaseg_results.tsv")
		require.True(t, ok)
		assert.Equal(t, "dwi", f.Datatype)
		assert.Equal(t, "results", f.Suffix)
		assert.Equal(t, ".tsv", f.Extension)
		assert.Equal(t, "CMH0001", f.Entities["sub"])
		assert.Equal(t, "01", f.Entities["ses"])
		assert.Equal(t, "noddi", f.Entities["model"])
		assert.Equal(t, "aparcaseg", f.Desc())
	})

	t.Run("rejects non-entity names", func(t *testing.T) {
		for _, name := range []string{
			"/d/README.md",
			"/d/dataset_description.json",
			"/d/dwi/notes_final.txt", // no sub- entity
			"/d/dwi/sub-A.tsv",       // no suffix token
		} {
			_, ok := parseFilename(name)
			assert.False(t, ok, name)
		}
	})
}

func TestLayoutGet(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, root, "sub-CMH0001/dwi/sub-CMH0001_model-noddi_desc-aparcaseg_results.tsv")
	touch(t, root, "sub-CMH0001/dwi/sub-CMH0001_model-noddi_desc-shen268_results.tsv")
	touch(t, root, "sub-CMH0001/dwi/sub-CMH0001_model-noddi_desc-aparcaseg_results.json")
	touch(t, root, "sub-CMH0001/anat/sub-CMH0001_model-noddi_desc-aparcaseg_results.tsv")
	touch(t, root, "sub-CMH0002/dwi/sub-CMH0002_model-noddi_desc-aparcaseg_results.tsv")
	touch(t, root, "sub-CMH0002/dwi/sub-CMH0002_model-dti_desc-aparcaseg_results.tsv")
	touch(t, root, "logs/pipeline.log")

	layout, err := NewLayout(root)
	require.NoError(t, err)

	query := func(subject string) Query {
		return Query{
			Subject:   subject,
			Datatype:  "dwi",
			Suffix:    "results",
			Extension: ".tsv",
			Entities:  map[string]string{"model": "noddi"},
		}
	}

	t.Run("filters by all constraints", func(t *testing.T) {
		got := layout.Get(query("CMH0001"))
		require.Len(t, got, 2)
		descs := []string{got[0].Desc(), got[1].Desc()}
		assert.ElementsMatch(t, []string{"aparcaseg", "shen268"}, descs)
	})

	t.Run("model entity excludes other models", func(t *testing.T) {
		got := layout.Get(query("CMH0002"))
		require.Len(t, got, 1)
		assert.Equal(t, "noddi", got[0].Entities["model"])
	})

	t.Run("unknown subject yields nothing", func(t *testing.T) {
		assert.Empty(t, layout.Get(query("MRP9999")))
	})
}

func TestNewLayout_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := NewLayout(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
