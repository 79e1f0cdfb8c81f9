// Package spn reads and writes storm pipe network (.spn) files.
//
// Reading splits the file into CONNECT, SJUNC and SLINK chunks (NODE and
// PIPE lines are nested in their SLINK), decodes each chunk into a Record,
// and assembles the records into a types.Network in file order. Writing is
// the exact inverse and reproduces the original text byte for byte.
package spn

import (
	"bytes"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/hydrocard/internal/chunk"
	"github.com/mesh-intelligence/hydrocard/internal/fsutil"
	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

// Extension is the file extension of network files.
const Extension = "spn"

// Options controls decoding.
type Options struct {
	// StrictCounts fails SLINK records whose PIPE count differs from the
	// declared numPipes. When false the mismatch is kept as read.
	StrictCounts bool
	Logger       *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Decode reads a whole network file from r.
func Decode(r io.Reader, opts Options) (*types.Network, error) {
	set, err := chunk.Read(r, Grammar)
	if err != nil {
		return nil, types.IOError("read", "network", err)
	}
	return decodeSet(set, opts)
}

// Unmarshal decodes network file text.
func Unmarshal(data []byte, opts Options) (*types.Network, error) {
	return Decode(bytes.NewReader(data), opts)
}

func decodeSet(set *chunk.Set, opts Options) (*types.Network, error) {
	log := opts.logger()
	records := make([]Record, 0, set.Len())
	for _, c := range set.Chunks() {
		rec, err := DecodeChunk(c, opts)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	n, err := Assemble(records)
	if err != nil {
		return nil, err
	}
	for _, sl := range n.SuperLinks {
		if sl.CountMismatch() {
			log.Warn("super link pipe count differs from declared count",
				zap.Int("slink", sl.Number),
				zap.Int("declared", sl.NumPipes),
				zap.Int("found", len(sl.Pipes)))
		}
	}
	log.Debug("decoded network",
		zap.Int("connections", len(n.Connections)),
		zap.Int("super_junctions", len(n.SuperJunctions)),
		zap.Int("super_links", len(n.SuperLinks)))
	return n, nil
}

// ReadFile decodes the network file at path.
func ReadFile(path string, opts Options) (*types.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.IOError("open", path, err)
	}
	defer f.Close()
	return Decode(f, opts)
}

// WriteFile encodes n to path atomically.
func WriteFile(path string, n *types.Network) error {
	if err := fsutil.WriteFileAtomic(path, func(w io.Writer) error {
		return Encode(w, n)
	}); err != nil {
		return types.IOError("write", path, err)
	}
	return nil
}
