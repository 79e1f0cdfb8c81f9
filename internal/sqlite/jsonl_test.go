package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

func TestExportImport(t *testing.T) {
	src, _ := attached(t)
	netID, err := src.SaveNetwork("storm.spn", sampleNetwork())
	require.NoError(t, err)
	dsID, err := src.SaveDataset("depth.dat", sampleDataset())
	require.NoError(t, err)

	snap := filepath.Join(t.TempDir(), "snapshot")
	require.NoError(t, src.Export(snap))

	data, err := os.ReadFile(filepath.Join(snap, NetworksFile))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
	assert.Contains(t, string(data), netID)

	dst, _ := attached(t)
	stats, err := dst.Import(snap)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Imported: 2}, stats)

	n, err := dst.LoadNetwork(netID)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(sampleNetwork(), n))
	d, err := dst.LoadDataset(dsID)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(sampleDataset(), d))

	stats, err = dst.Import(snap)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Existing: 2}, stats, "re-import leaves stored files alone")
}

func TestImportSkipsMalformedRecords(t *testing.T) {
	dir := t.TempDir()
	lines := strings.Join([]string{
		`{not json`,
		`{"file_id":"bogus","name":"x","created_at":"2026-01-01T00:00:00Z","network":{}}`,
		`{"file_id":"0190f0c4-7f8a-7b3c-9d2e-1a2b3c4d5e6f","name":"ok","created_at":"2026-01-01T00:00:00Z","network":{"connections":[{"slink_number":1,"up_sjunc_number":2,"down_sjunc_number":3}]}}`,
		`{"file_id":"0190f0c4-7f8a-7b3c-9d2e-1a2b3c4d5e70","name":"no graph","created_at":"2026-01-01T00:00:00Z"}`,
		``,
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, NetworksFile), []byte(lines), 0o644))

	b, _ := attached(t)
	stats, err := b.Import(dir)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Imported: 1, Skipped: 3}, stats)

	files, err := b.ListFiles(types.KindNetwork)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "ok", files[0].Name)
}

func TestImportMissingSnapshot(t *testing.T) {
	b, _ := attached(t)
	stats, err := b.Import(filepath.Join(t.TempDir(), "none"))
	require.NoError(t, err)
	assert.Zero(t, stats)
}

func TestReadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.jsonl")
	require.NoError(t, writeJSONL(path, []map[string]int{{"a": 1}, {"b": 2}}))

	recs, skipped, err := readJSONL(path)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, recs, 2)
	assert.JSONEq(t, `{"a":1}`, string(recs[0]))
}
