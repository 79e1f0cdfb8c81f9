package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNetwork() *Network {
	return &Network{
		Connections: []Connection{{SlinkNumber: 1, UpSjuncNumber: 1, DownSjuncNumber: 2}},
		SuperJunctions: []SuperJunction{
			{Number: 1, GroundSurfaceElev: 10},
			{Number: 2, GroundSurfaceElev: 9},
		},
		SuperLinks: []SuperLink{{Number: 1, NumPipes: 1, Pipes: []Pipe{{Number: 1}}}},
	}
}

func TestNetworkValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(n *Network)
		wantErr bool
	}{
		{name: "consistent network", mutate: func(n *Network) {}},
		{
			name:    "unknown super link",
			mutate:  func(n *Network) { n.Connections[0].SlinkNumber = 7 },
			wantErr: true,
		},
		{
			name:    "unknown upstream junction",
			mutate:  func(n *Network) { n.Connections[0].UpSjuncNumber = 7 },
			wantErr: true,
		},
		{
			name:    "unknown downstream junction",
			mutate:  func(n *Network) { n.Connections[0].DownSjuncNumber = 7 },
			wantErr: true,
		},
		{
			name:    "duplicate junction number",
			mutate:  func(n *Network) { n.SuperJunctions[1].Number = 1 },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := sampleNetwork()
			tt.mutate(n)
			err := n.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidReference)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSuperLinkCountMismatch(t *testing.T) {
	assert.False(t, SuperLink{NumPipes: 1, Pipes: []Pipe{{Number: 1}}}.CountMismatch())
	assert.True(t, SuperLink{NumPipes: 3, Pipes: []Pipe{{Number: 1}}}.CountMismatch())
}

func TestNetworkSuperLinkLookup(t *testing.T) {
	n := sampleNetwork()
	sl, ok := n.SuperLink(1)
	require.True(t, ok)
	assert.Equal(t, 1, sl.NumPipes)

	_, ok = n.SuperLink(2)
	assert.False(t, ok)
}
