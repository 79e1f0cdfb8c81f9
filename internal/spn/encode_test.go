package spn

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

func TestRoundTripStandardFile(t *testing.T) {
	original, err := os.ReadFile("testdata/standard.spn")
	require.NoError(t, err)

	n, err := Unmarshal(original, Options{StrictCounts: true})
	require.NoError(t, err)
	assert.Equal(t, string(original), string(Marshal(n)))
}

func TestRoundTripMinimalNetwork(t *testing.T) {
	n, err := Unmarshal([]byte(minimalNetwork), Options{})
	require.NoError(t, err)

	require.Len(t, n.SuperJunctions, 1)
	require.Len(t, n.SuperLinks, 1)
	require.Len(t, n.Connections, 1)
	assert.Len(t, n.SuperLinks[0].Nodes, 1)
	assert.Len(t, n.SuperLinks[0].Pipes, 1)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, n))
	assert.Equal(t, minimalNetwork, buf.String())
}

func TestEncodePrecision(t *testing.T) {
	n := &types.Network{
		SuperJunctions: []types.SuperJunction{{
			Number:            1,
			GroundSurfaceElev: 123.456789,
			InvertElev:        123.456789,
			ManholeSA:         123.456789,
			WeirSideLength:    0.1234564,
			OrificeDiameter:   2,
		}},
	}
	got := string(Marshal(n))
	assert.Equal(t, "SJUNC  1  123.46  123.46  123.456789  0  0  0  0.123456  2.000000\n", got)
}

func TestEncodePipeLengthUsesTwoPlaces(t *testing.T) {
	n := &types.Network{SuperLinks: []types.SuperLink{{
		Number:   9,
		NumPipes: 1,
		Pipes:    []types.Pipe{{Number: 1, XSecType: 2, Length: 10.005001, Slope: 0.0000006}},
	}}}
	got := string(Marshal(n))
	assert.Equal(t, "SLINK   9      1\n"+
		"PIPE  1  2  0.000000  0.000000  0.000001  0.000000  10.01  0.000000  0.000000\n", got)
}

func TestEncodeGroupsRecordsByKind(t *testing.T) {
	// Records read in any top-level order are written CONNECT, SJUNC, SLINK.
	input := "SLINK 1 0\nSJUNC 2 0 0 0 0 0 0 0 0\nCONNECT 1 2 2\n"
	n, err := Unmarshal([]byte(input), Options{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(Marshal(n)), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "CONNECT"))
	assert.True(t, strings.HasPrefix(lines[1], "SJUNC"))
	assert.True(t, strings.HasPrefix(lines[2], "SLINK"))
}

func TestEncodeEmptyNetwork(t *testing.T) {
	assert.Empty(t, Marshal(&types.Network{}))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodeWriteFailure(t *testing.T) {
	err := Encode(failingWriter{}, &types.Network{Connections: []types.Connection{{}}})
	assert.ErrorIs(t, err, types.ErrIO)
}

func TestWriteFile(t *testing.T) {
	n, err := ReadFile("testdata/standard.spn", Options{})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.spn")
	require.NoError(t, WriteFile(out, n))

	want, err := os.ReadFile("testdata/standard.spn")
	require.NoError(t, err)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestWriteFileMissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "nope", "out.spn"), &types.Network{})
	assert.ErrorIs(t, err, types.ErrIO)
}
