package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

func TestNewBackendRoundTrip(t *testing.T) {
	store := NewBackend()
	require.NoError(t, store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer store.Detach()

	n := &types.Network{Connections: []types.Connection{{SlinkNumber: 1, UpSjuncNumber: 2, DownSjuncNumber: 3}}}
	id, err := store.SaveNetwork("storm.spn", n)
	require.NoError(t, err)

	got, err := store.LoadNetwork(id)
	require.NoError(t, err)
	assert.Equal(t, n.Connections, got.Connections)
}
