package wms

import (
	"fmt"

	"github.com/mesh-intelligence/hydrocard/internal/chunk"
	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

// assembler walks dataset chunks in source order and builds one Dataset.
type assembler struct {
	opts  Options
	geom  types.Geometry
	ds    *types.Dataset
	ended bool
}

func newAssembler(opts Options) *assembler {
	return &assembler{opts: opts, geom: opts.Mask.Geometry()}
}

func (a *assembler) add(c *chunk.Chunk) error {
	kind, ok := KindOf(c.Keyword)
	if !ok {
		return &types.FormatError{Line: c.Line(), Keyword: c.Keyword, Msg: "unrecognized record"}
	}
	if a.ended {
		return &types.AssemblyError{Line: c.Line(), Keyword: kind.String(), Msg: "record after ENDDS"}
	}

	switch kind {
	case KindDataset:
		if a.ds != nil {
			return &types.AssemblyError{Line: c.Line(), Keyword: "DATASET", Msg: "second DATASET header"}
		}
		d, err := DecodeHeader(c)
		if err != nil {
			return err
		}
		if d.NumberCells != a.geom.Cells() {
			return &types.FormatError{
				Line:    c.Line(),
				Keyword: "DATASET",
				Field:   cardNC,
				Msg:     fmt.Sprintf("%d cells but mask grid is %dx%d", d.NumberCells, a.geom.Columns, a.geom.Rows),
			}
		}
		a.ds = &d
	case KindTimeStep:
		if a.ds == nil {
			return &types.AssemblyError{Line: c.Line(), Keyword: "TS", Msg: "time step before DATASET header"}
		}
		ts, err := DecodeTimeStep(c, a.ds.NumberCells)
		if err != nil {
			return err
		}
		ts.TimeStep = len(a.ds.Rasters) + 1
		if a.opts.Spatial {
			r, err := a.opts.Codec.Encode(a.geom, ts.Cells)
			if err != nil {
				return fmt.Errorf("encoding time step %d: %w", ts.TimeStep, err)
			}
			ts.Raster, ts.Cells = &r, nil
		}
		a.ds.Rasters = append(a.ds.Rasters, ts)
	case KindEnd:
		if err := decodeEnd(c); err != nil {
			return err
		}
		if a.ds == nil {
			return &types.AssemblyError{Line: c.Line(), Keyword: "ENDDS", Msg: "ENDDS before DATASET header"}
		}
		a.ended = true
	default:
		panic(fmt.Sprintf("wms: unhandled record kind %d", kind))
	}
	return nil
}

func (a *assembler) finish() (*types.Dataset, error) {
	if a.ds == nil {
		return nil, &types.AssemblyError{Keyword: "DATASET", Msg: "no DATASET header"}
	}
	return a.ds, nil
}

// Assemble builds a Dataset from a chunked dataset file. opts.Mask must be
// set, and opts.Codec too when opts.Spatial is on.
func Assemble(set *chunk.Set, opts Options) (*types.Dataset, error) {
	if err := opts.checkRead(); err != nil {
		return nil, err
	}
	a := newAssembler(opts)
	for _, c := range set.Chunks() {
		if err := a.add(c); err != nil {
			return nil, err
		}
	}
	return a.finish()
}
