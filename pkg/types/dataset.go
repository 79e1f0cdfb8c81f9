package types

import "time"

// DatasetKind distinguishes scalar (BEGSCL) from vector (BEGVEC) datasets.
type DatasetKind int

// Dataset kinds. The numeric values match the type column used by the
// store.
const (
	DatasetVector DatasetKind = 0
	DatasetScalar DatasetKind = 1
)

// String returns "scalar" or "vector".
func (k DatasetKind) String() string {
	switch k {
	case DatasetScalar:
		return "scalar"
	case DatasetVector:
		return "vector"
	default:
		return "unknown"
	}
}

// Time step status flags. StatusOwnRaster means the step re-specifies the
// status raster; StatusShared means it reuses the mask-derived one.
const (
	StatusShared    = 0
	StatusOwnRaster = 1
)

// DefaultEpoch is the base time used to turn dataset timestamps (minutes)
// into wall-clock times when no project start date is configured.
var DefaultEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Dataset is the decoded form of a WMS gridded or vector dataset file.
type Dataset struct {
	Kind DatasetKind `json:"kind"`
	// ObjectType is the OBJTYPE tag of a scalar dataset or the VECTYPE tag
	// of a vector dataset.
	ObjectType  string           `json:"object_type"`
	ObjectID    int              `json:"object_id"`
	NumberData  int              `json:"number_data"`
	NumberCells int              `json:"number_cells"`
	Name        string           `json:"name"`
	Rasters     []TimeStepRaster `json:"rasters"`
}

// TimeStepRaster is one time-indexed grid snapshot of a Dataset.
// After decoding exactly one of Cells or Raster is set.
type TimeStepRaster struct {
	TimeStep  int            `json:"time_step"` // 1-based, sequential
	Timestamp float64        `json:"timestamp"` // minutes since the epoch
	Status    int            `json:"status"`
	Cells     []float64      `json:"cells,omitempty"` // row-major
	Raster    *EncodedRaster `json:"raster,omitempty"`
}

// Time returns the wall-clock time of the step relative to epoch.
func (r TimeStepRaster) Time(epoch time.Time) time.Time {
	return epoch.Add(time.Duration(r.Timestamp * float64(time.Minute)))
}

// Times returns the wall-clock time of each raster relative to epoch, in
// raster order.
func (d *Dataset) Times(epoch time.Time) []time.Time {
	out := make([]time.Time, len(d.Rasters))
	for i, r := range d.Rasters {
		out[i] = r.Time(epoch)
	}
	return out
}
