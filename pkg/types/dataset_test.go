package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDatasetTimes(t *testing.T) {
	d := &Dataset{Rasters: []TimeStepRaster{
		{TimeStep: 1, Timestamp: 0},
		{TimeStep: 2, Timestamp: 15},
		{TimeStep: 3, Timestamp: 90.5},
	}}
	epoch := time.Date(2002, time.August, 30, 0, 0, 0, 0, time.UTC)

	got := d.Times(epoch)
	assert.Equal(t, []time.Time{
		epoch,
		epoch.Add(15 * time.Minute),
		epoch.Add(90*time.Minute + 30*time.Second),
	}, got)
}

func TestDatasetKindString(t *testing.T) {
	assert.Equal(t, "scalar", DatasetScalar.String())
	assert.Equal(t, "vector", DatasetVector.String())
	assert.Equal(t, "unknown", DatasetKind(9).String())
}
