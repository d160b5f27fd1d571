package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

func TestRebuildCmd_PrintsReport(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.ingest.report.Duplicates = 2

	out, _, err := execute(t, nil, "rebuild")

	require.NoError(t, err)
	assert.Equal(t, 1, ts.ingest.rebuilds)
	assert.Contains(t, out, "Rebuilding index...")
	assert.Contains(t, out, "Indexed 42 records from 2 of 3 files in 1.5s.")
	assert.Contains(t, out, "Skipped 1 files with malformed names")
	assert.Contains(t, out, "Skipped 2 duplicate videos")
	assert.NotContains(t, out, "could not be read")
}

func TestRebuildCmd_RejectsArgs(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, nil, "rebuild", "extra")

	assert.Error(t, err)
}

func TestRebuildCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "lock held", err: domain.ErrRebuildInProgress, wantMsg: "another rebuild is running"},
		{name: "missing directory", err: domain.ErrNotFound, wantMsg: "rebuild failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, cleanup := setupTestServices()
			defer cleanup()
			ts.ingest.err = tt.err

			_, _, err := execute(t, nil, "rebuild")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRebuildCmd_NotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	SetServices(nil)

	_, _, err := execute(t, nil, "rebuild")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}

func TestExportCmd_Stdout(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.ingest.exported = `{"date":"20231128","title":"Morning Stream"}` + "\n"

	out, errOut, err := execute(t, nil, "export")

	require.NoError(t, err)
	assert.Equal(t, ts.ingest.exported, out)
	assert.Contains(t, errOut, "Exported 42 records from 2 files")
}

func TestExportCmd_File(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.ingest.exported = "line\n"
	path := filepath.Join(t.TempDir(), "records.jsonl")

	out, _, err := execute(t, nil, "export", path)

	require.NoError(t, err)
	assert.Empty(t, out)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}

func TestExportCmd_BadPath(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	path := filepath.Join(t.TempDir(), "missing", "records.jsonl")

	_, _, err := execute(t, nil, "export", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create export file")
}

func TestImportCmd_File(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	path := filepath.Join(t.TempDir(), "records.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{}\n{}\n"), 0o600))

	out, _, err := execute(t, nil, "import", path)

	require.NoError(t, err)
	assert.Equal(t, "{}\n{}\n", ts.ingest.imported)
	assert.Contains(t, out, "Importing records...")
	assert.Contains(t, out, "Indexed 42 records.")
}

func TestImportCmd_Stdin(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, strings.NewReader("{\"text\":\"hi\"}\n"), "import", "-")

	require.NoError(t, err)
	assert.Equal(t, "{\"text\":\"hi\"}\n", ts.ingest.imported)
}

func TestImportCmd_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()

		_, _, err := execute(t, nil, "import", filepath.Join(t.TempDir(), "nope.jsonl"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "open import file")
	})

	t.Run("requires argument", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()

		_, _, err := execute(t, nil, "import")

		assert.Error(t, err)
	})

	t.Run("lock held", func(t *testing.T) {
		ts, cleanup := setupTestServices()
		defer cleanup()
		ts.ingest.err = domain.ErrRebuildInProgress

		_, _, err := execute(t, strings.NewReader(""), "import", "-")

		assert.ErrorIs(t, err, domain.ErrRebuildInProgress)
	})
}
