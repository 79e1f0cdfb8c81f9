package grid

import (
	"io"
	"os"

	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

// MaskExtension is the file extension of GRASS ASCII mask grids.
const MaskExtension = "msk"

// Mask is a GRASS ASCII mask grid. It implements types.MaskSource.
type Mask struct {
	geom   types.Geometry
	status []string
}

var _ types.MaskSource = (*Mask)(nil)

// Geometry returns the grid geometry of the mask.
func (m *Mask) Geometry() types.Geometry { return m.geom }

// StatusLines returns the mask values exactly as they appear in the file,
// in row-major order.
func (m *Mask) StatusLines() []string { return m.status }

// ParseMask reads a mask grid from r.
func ParseMask(r io.Reader) (*Mask, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, types.IOError("read", "mask", err)
	}
	h, vals, err := parseGrass("mask", string(data))
	if err != nil {
		return nil, err
	}
	return &Mask{geom: h.Geometry(), status: vals}, nil
}

// ReadMask reads the mask grid at path.
func ReadMask(path string) (*Mask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.IOError("open", path, err)
	}
	defer f.Close()
	return ParseMask(f)
}
