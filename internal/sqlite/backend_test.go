package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

func attached(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func sampleNetwork() *types.Network {
	return &types.Network{
		Connections: []types.Connection{
			{SlinkNumber: 1, UpSjuncNumber: 1, DownSjuncNumber: 2},
			{SlinkNumber: 2, UpSjuncNumber: 2, DownSjuncNumber: 3},
		},
		SuperJunctions: []types.SuperJunction{
			{Number: 1, GroundSurfaceElev: 1335.84, InvertElev: 1332.34, ManholeSA: 0.785398, InletCode: 1},
			{Number: 3, GroundSurfaceElev: 1326.5, InvertElev: 1322, ManholeSA: 0.785398, NodeOrCellJ: 3},
			{Number: 2, GroundSurfaceElev: 1331.12, InvertElev: 1327.62, ManholeSA: 0.785398, LinkOrCellI: 1, WeirSideLength: 1.5, OrificeDiameter: 0.3},
		},
		SuperLinks: []types.SuperLink{
			{
				Number:   2,
				NumPipes: 3,
				Nodes: []types.SuperNode{
					{Number: 7, GroundSurfaceElev: 1, CellI: 14, CellJ: 22},
					{Number: 3, GroundSurfaceElev: 2, CellI: 15, CellJ: 23},
				},
				Pipes: []types.Pipe{
					{Number: 20, XSecType: 1, DiameterOrHeight: 0.6096, Slope: 0.009982, Roughness: 0.013, Length: 236.44},
				},
			},
			{Number: 1, NumPipes: 0},
		},
	}
}

func sampleDataset() *types.Dataset {
	return &types.Dataset{
		Kind:        types.DatasetScalar,
		ObjectType:  `"grid"`,
		ObjectID:    26,
		NumberData:  4,
		NumberCells: 4,
		Name:        "depth",
		Rasters: []types.TimeStepRaster{
			{TimeStep: 1, Timestamp: 0, Status: types.StatusShared, Cells: []float64{0, 0.1, 0.2, 123.456789}},
			{TimeStep: 2, Timestamp: 15.5, Status: types.StatusOwnRaster, Raster: &types.EncodedRaster{Format: "grass-ascii", Data: []byte("north: 1\n")}},
		},
	}
}

func TestAttachCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := NewBackend()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}
	require.NoError(t, b.Attach(cfg))
	defer b.Detach()

	_, err := os.Stat(filepath.Join(dir, DBFile))
	assert.NoError(t, err)
	assert.ErrorIs(t, b.Attach(cfg), types.ErrAlreadyAttached)
}

func TestAttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{DataDir: t.TempDir()}), types.ErrBackendEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()}), types.ErrBackendUnknown)
}

func TestDetachIsIdempotent(t *testing.T) {
	b, _ := attached(t)
	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach())

	_, err := b.SaveNetwork("x", &types.Network{})
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = b.LoadDataset("x")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = b.ListFiles("")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, b.DeleteFile("x"), types.ErrStoreDetached)
	assert.ErrorIs(t, b.Export(t.TempDir()), types.ErrStoreDetached)
}

func TestNetworkRoundTrip(t *testing.T) {
	b, _ := attached(t)
	want := sampleNetwork()

	id, err := b.SaveNetwork("storm.spn", want)
	require.NoError(t, err)

	got, err := b.LoadNetwork(id)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("network changed in storage (-want +got):\n%s", diff)
	}
}

func TestDatasetRoundTrip(t *testing.T) {
	b, _ := attached(t)
	want := sampleDataset()

	id, err := b.SaveDataset("depth.dat", want)
	require.NoError(t, err)

	got, err := b.LoadDataset(id)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dataset changed in storage (-want +got):\n%s", diff)
	}
}

func TestDatasetKeepsRasterOrderAndNumbers(t *testing.T) {
	b, _ := attached(t)
	want := &types.Dataset{
		Kind:        types.DatasetScalar,
		ObjectType:  "grid",
		NumberCells: 1,
		Rasters: []types.TimeStepRaster{
			{TimeStep: 0, Timestamp: 30, Cells: []float64{3}},
			{TimeStep: 0, Timestamp: 10, Cells: []float64{1}},
			{TimeStep: 5, Timestamp: 20, Cells: []float64{2}},
			{TimeStep: 5, Timestamp: 40, Cells: []float64{4}},
		},
	}

	id, err := b.SaveDataset("built.dat", want)
	require.NoError(t, err)

	got, err := b.LoadDataset(id)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dataset changed in storage (-want +got):\n%s", diff)
	}
}

func TestDataPersistsAcrossAttach(t *testing.T) {
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	require.NoError(t, b.Attach(cfg))
	id, err := b.SaveNetwork("storm.spn", sampleNetwork())
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(cfg))
	defer b2.Detach()
	got, err := b2.LoadNetwork(id)
	require.NoError(t, err)
	assert.Len(t, got.SuperLinks, 2)
}

func TestLoadErrors(t *testing.T) {
	b, _ := attached(t)
	netID, err := b.SaveNetwork("storm.spn", sampleNetwork())
	require.NoError(t, err)

	_, err = b.LoadNetwork("")
	assert.ErrorIs(t, err, types.ErrInvalidID)
	_, err = b.LoadNetwork("not-a-uuid")
	assert.ErrorIs(t, err, types.ErrInvalidID)
	_, err = b.LoadNetwork(newUUID())
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = b.LoadDataset(netID)
	assert.ErrorIs(t, err, types.ErrKindMismatch)

	_, err = b.SaveNetwork("nil", nil)
	assert.ErrorIs(t, err, types.ErrInvalidData)
	_, err = b.SaveDataset("nil", nil)
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestListFiles(t *testing.T) {
	b, _ := attached(t)
	fixed := time.Date(2026, time.March, 4, 5, 6, 7, 0, time.UTC)
	b.now = func() time.Time { return fixed }

	n1, err := b.SaveNetwork("a.spn", sampleNetwork())
	require.NoError(t, err)
	d1, err := b.SaveDataset("b.dat", sampleDataset())
	require.NoError(t, err)
	n2, err := b.SaveNetwork("c.spn", &types.Network{})
	require.NoError(t, err)

	all, err := b.ListFiles("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{n1, d1, n2}, []string{all[0].FileID, all[1].FileID, all[2].FileID})
	assert.Equal(t, types.FileRecord{FileID: d1, Kind: types.KindDataset, Name: "b.dat", CreatedAt: fixed}, all[1])

	nets, err := b.ListFiles(types.KindNetwork)
	require.NoError(t, err)
	assert.Len(t, nets, 2)

	_, err = b.ListFiles("raster")
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestDeleteFile(t *testing.T) {
	b, _ := attached(t)
	keep, err := b.SaveNetwork("keep.spn", sampleNetwork())
	require.NoError(t, err)
	drop, err := b.SaveNetwork("drop.spn", sampleNetwork())
	require.NoError(t, err)
	ds, err := b.SaveDataset("depth.dat", sampleDataset())
	require.NoError(t, err)

	require.NoError(t, b.DeleteFile(drop))
	require.NoError(t, b.DeleteFile(ds))

	_, err = b.LoadNetwork(drop)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, b.DeleteFile(drop), types.ErrNotFound)

	got, err := b.LoadNetwork(keep)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(sampleNetwork(), got))

	var orphans int
	require.NoError(t, b.db.QueryRow(`SELECT COUNT(*) FROM pipes`).Scan(&orphans))
	assert.Equal(t, 1, orphans, "only the kept network's pipe remains")
	require.NoError(t, b.db.QueryRow(`SELECT COUNT(*) FROM dataset_rasters`).Scan(&orphans))
	assert.Zero(t, orphans)
}
