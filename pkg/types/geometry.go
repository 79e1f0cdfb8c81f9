package types

// Geometry describes how a flat, row-major cell stream maps onto a 2-D grid.
// West and North are the coordinates of the upper-left corner.
type Geometry struct {
	Columns  int     `json:"columns"`
	Rows     int     `json:"rows"`
	West     float64 `json:"west"`
	North    float64 `json:"north"`
	CellSize float64 `json:"cell_size"`
}

// Cells returns Columns*Rows.
func (g Geometry) Cells() int {
	return g.Columns * g.Rows
}

// EncodedRaster is an opaque, externally encoded raster. Format names the
// codec that produced Data.
type EncodedRaster struct {
	Format string `json:"format"`
	Data   []byte `json:"data"`
}

// MaskSource supplies grid geometry and the pre-rendered status raster
// block written for time steps whose status flag is StatusOwnRaster.
type MaskSource interface {
	Geometry() Geometry
	// StatusLines returns the status raster values in row-major order,
	// one already-formatted value per element.
	StatusLines() []string
}

// RasterCodec converts between cell arrays and encoded rasters. It is used
// on read when spatial mode is on, and on write when a time step carries
// an EncodedRaster instead of cells.
type RasterCodec interface {
	Encode(g Geometry, cells []float64) (EncodedRaster, error)
	Decode(r EncodedRaster) ([]float64, error)
}
