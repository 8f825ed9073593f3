package roistats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleTable = "name\tn_vx_masked\tod_mean\ticvf_mean\tisovf_mean\n" +
	"ctx-lh-precentral\t100\t0.25\t0.55\t0.05\n" +
	"Left-Thalamus\t50\t0.35\t0.45\t0.15\n"

func TestLoad(t *testing.T) {
	t.Parallel()

	table, err := Load(writeTable(t, sampleTable))
	require.NoError(t, err)

	require.Len(t, table.ROIs, 2)
	assert.Equal(t, ROI{
		Name:         "ctx-lh-precentral",
		MaskedVoxels: 100,
		ODMean:       0.25,
		ICVFMean:     0.55,
		ISOVFMean:    0.05,
	}, table.ROIs[0])
}

func TestLoad_IgnoresExtraColumns(t *testing.T) {
	t.Parallel()

	table, err := Load(writeTable(t, "index\tname\tn_vx_masked\tod_mean\ticvf_mean\tisovf_mean\tfa_mean\n"+
		"1\tLeft-Thalamus\t50\t0.35\t0.45\t0.15\t0.4\n"))
	require.NoError(t, err)

	require.Len(t, table.ROIs, 1)
	assert.Equal(t, "Left-Thalamus", table.ROIs[0].Name)
	assert.Equal(t, 50.0, table.ROIs[0].MaskedVoxels)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing column", func(t *testing.T) {
		_, err := Load(writeTable(t, "name\tod_mean\ticvf_mean\tisovf_mean\nA\t1\t1\t1\n"))
		assert.ErrorContains(t, err, "n_vx_masked")
	})

	t.Run("non-numeric metric", func(t *testing.T) {
		_, err := Load(writeTable(t, "name\tn_vx_masked\tod_mean\ticvf_mean\tisovf_mean\nA\t10\tNaNN\t1\t1\n"))
		assert.ErrorContains(t, err, "od_mean")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.tsv"))
		assert.Error(t, err)
	})
}

func TestFilterGM(t *testing.T) {
	t.Parallel()

	table, err := Load(writeTable(t, sampleTable))
	require.NoError(t, err)

	tissueTypes := map[string]string{
		"ctx-lh-precentral": "GM",
		"Left-Thalamus":     "WM",
	}

	gm := table.FilterGM(tissueTypes)
	require.Len(t, gm.ROIs, 1)
	assert.Equal(t, "ctx-lh-precentral", gm.ROIs[0].Name)

	// The source table is untouched.
	assert.Len(t, table.ROIs, 2)
}

func TestFilterGM_UnmappedNamesDropOut(t *testing.T) {
	t.Parallel()

	table, err := Load(writeTable(t, sampleTable))
	require.NoError(t, err)

	gm := table.FilterGM(map[string]string{})
	assert.Empty(t, gm.ROIs)
}
