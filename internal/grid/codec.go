package grid

import (
	"bytes"
	"fmt"

	"github.com/mesh-intelligence/hydrocard/internal/cardfmt"
	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

// FormatGrassASCII names rasters produced by ASCIICodec.
const FormatGrassASCII = "grass-ascii"

// ASCIICodec encodes time-step cells as GRASS ASCII grids. It implements
// types.RasterCodec.
type ASCIICodec struct{}

var _ types.RasterCodec = ASCIICodec{}

// Encode renders cells on grid g.
func (ASCIICodec) Encode(g types.Geometry, cells []float64) (types.EncodedRaster, error) {
	if len(cells) != g.Cells() {
		return types.EncodedRaster{}, &types.FormatError{
			Keyword: FormatGrassASCII,
			Msg:     fmt.Sprintf("%d cells for a %dx%d grid", len(cells), g.Columns, g.Rows),
		}
	}
	h := header{
		North: g.North,
		South: g.North - float64(g.Rows)*g.CellSize,
		East:  g.West + float64(g.Columns)*g.CellSize,
		West:  g.West,
		Rows:  g.Rows,
		Cols:  g.Columns,
	}
	vals := make([]string, len(cells))
	for i, v := range cells {
		vals[i] = cardfmt.Shortest(v)
	}
	var buf bytes.Buffer
	if err := writeGrass(&buf, h, vals); err != nil {
		return types.EncodedRaster{}, err
	}
	return types.EncodedRaster{Format: FormatGrassASCII, Data: buf.Bytes()}, nil
}

// Decode parses a GRASS ASCII raster back into row-major cells.
func (ASCIICodec) Decode(r types.EncodedRaster) ([]float64, error) {
	if r.Format != FormatGrassASCII {
		return nil, &types.FormatError{Keyword: FormatGrassASCII, Msg: fmt.Sprintf("cannot decode %q raster", r.Format)}
	}
	_, vals, err := parseGrass(FormatGrassASCII, string(r.Data))
	if err != nil {
		return nil, err
	}
	cells := make([]float64, len(vals))
	for i, v := range vals {
		f, err := cardfmt.ParseFloat(v)
		if err != nil {
			return nil, &types.FormatError{Keyword: FormatGrassASCII, Field: fmt.Sprintf("cell %d", i+1), Msg: "not a number", Err: err}
		}
		cells[i] = f
	}
	return cells, nil
}
