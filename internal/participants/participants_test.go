package participants

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "participants.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_PreservesFileOrder(t *testing.T) {
	t.Parallel()

	path := writeTSV(t, "participant_id\tage\tsex\nsub-CMH0001\t34\tF\nsub-CMH0002\t29\tM\nsub-MRP0003\t51\tF\n")

	got, err := Load(path)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "sub-CMH0001", got[0].ID)
	assert.Equal(t, "sub-CMH0002", got[1].ID)
	assert.Equal(t, "sub-MRP0003", got[2].ID)
}

func TestLoad_IDColumnNotFirst(t *testing.T) {
	t.Parallel()

	path := writeTSV(t, "age\tparticipant_id\n34\tsub-CMH0001\n")

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "sub-CMH0001", got[0].ID)
}

func TestLoad_SkipsBlankIDs(t *testing.T) {
	t.Parallel()

	path := writeTSV(t, "participant_id\nsub-CMH0001\n\nsub-CMH0002\n")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.tsv"))
		assert.Error(t, err)
	})

	t.Run("missing column", func(t *testing.T) {
		path := writeTSV(t, "subject\tsite\nCMH0001\tCMH\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "participant_id")
	})

	t.Run("header only", func(t *testing.T) {
		path := writeTSV(t, "participant_id\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "no participants")
	})
}

func TestSubjectLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CMH0001", Participant{ID: "sub-CMH0001"}.SubjectLabel())
	// Already-stripped identifiers pass through unchanged.
	assert.Equal(t, "CMH0001", Participant{ID: "CMH0001"}.SubjectLabel())
}
