package template

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTemplate = "index\tname\ttissue_type\n" +
	"1\tctx-lh-precentral\tGM\n" +
	"2\tLeft-Cerebral-White-Matter\tWM\n" +
	"3\tLeft-Lateral-Ventricle\tCSF\n"

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dseg.tsv")
	require.NoError(t, os.WriteFile(path, []byte(sampleTemplate), 0o644))

	types, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "GM", types["ctx-lh-precentral"])
	assert.Equal(t, "WM", types["Left-Cerebral-White-Matter"])
	assert.Equal(t, "CSF", types["Left-Lateral-Ventricle"])
}

func TestLoad_URL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleTemplate))
	}))
	defer srv.Close()

	types, err := Load(context.Background(), srv.URL+"/dseg.tsv")
	require.NoError(t, err)
	assert.Equal(t, "GM", types["ctx-lh-precentral"])
}

func TestLoad_URLErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL+"/dseg.tsv")
	assert.ErrorContains(t, err, "unexpected status")
}

func TestLoad_FileErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.tsv"))
		assert.Error(t, err)
	})

	t.Run("missing columns", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.tsv")
		require.NoError(t, os.WriteFile(path, []byte("label\tclass\nA\tGM\n"), 0o644))
		_, err := Load(context.Background(), path)
		assert.ErrorContains(t, err, "tissue_type")
	})
}
