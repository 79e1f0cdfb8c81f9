// Package wms reads and writes WMS gridded and vector dataset files.
//
// A dataset file is a DATASET header chunk followed by one TS chunk per
// time step and an ENDDS terminator. Cell values are a flat row-major
// stream; the mask collaborator supplies the grid geometry that gives the
// stream its shape and the status raster written for steps that carry
// their own.
package wms

import (
	"bytes"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/hydrocard/internal/chunk"
	"github.com/mesh-intelligence/hydrocard/internal/fsutil"
	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

// Options carries the collaborators used for reading and writing.
type Options struct {
	// Mask is required for reading. On write it is only consulted for
	// time steps whose status is types.StatusOwnRaster.
	Mask types.MaskSource
	// Spatial stores each decoded time step as an EncodedRaster produced
	// by Codec instead of a cell array.
	Spatial bool
	Codec   types.RasterCodec
	// Epoch is the base time for timestamps. Zero means types.DefaultEpoch.
	Epoch  time.Time
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) checkRead() error {
	if o.Mask == nil {
		return &types.MissingCollaboratorError{Collaborator: "mask", Msg: "a mask grid is required to read datasets"}
	}
	if o.Spatial && o.Codec == nil {
		return &types.MissingCollaboratorError{Collaborator: "raster codec", Msg: "spatial mode needs a raster codec"}
	}
	return nil
}

// Epoch returns the timestamp base in effect for opts.
func Epoch(opts Options) time.Time {
	if opts.Epoch.IsZero() {
		return types.DefaultEpoch
	}
	return opts.Epoch
}

// Times returns the wall-clock time of each time step of d.
func Times(d *types.Dataset, opts Options) []time.Time {
	return d.Times(Epoch(opts))
}

// Decode reads a whole dataset file from r.
func Decode(r io.Reader, opts Options) (*types.Dataset, error) {
	if err := opts.checkRead(); err != nil {
		return nil, err
	}
	set, err := chunk.Read(r, Grammar)
	if err != nil {
		return nil, types.IOError("read", "dataset", err)
	}
	d, err := Assemble(set, opts)
	if err != nil {
		return nil, err
	}
	log := opts.logger()
	if len(set.ByKeyword(KindEnd.String())) == 0 {
		log.Debug("dataset has no ENDDS terminator", zap.String("name", d.Name))
	}
	fields := []zap.Field{
		zap.String("name", d.Name),
		zap.Stringer("kind", d.Kind),
		zap.Int("cells", d.NumberCells),
		zap.Int("time_steps", len(d.Rasters)),
	}
	if n := len(d.Rasters); n > 0 {
		times := Times(d, opts)
		fields = append(fields, zap.Time("first", times[0]), zap.Time("last", times[n-1]))
	}
	log.Debug("decoded dataset", fields...)
	return d, nil
}

// Unmarshal decodes dataset file text.
func Unmarshal(data []byte, opts Options) (*types.Dataset, error) {
	return Decode(bytes.NewReader(data), opts)
}

// ReadFile decodes the dataset file at path.
func ReadFile(path string, opts Options) (*types.Dataset, error) {
	if err := opts.checkRead(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, types.IOError("open", path, err)
	}
	defer f.Close()
	return Decode(f, opts)
}

// WriteFile encodes d to path atomically. Nothing is written when
// rendering fails.
func WriteFile(path string, d *types.Dataset, opts Options) error {
	data, err := Marshal(d, opts)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}); err != nil {
		return types.IOError("write", path, err)
	}
	return nil
}
