package wms

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/hydrocard/internal/cardfmt"
	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

const crlf = "\r\n"

// Marshal renders d as dataset file text with CRLF line endings. The mask
// supplies the status block of every StatusOwnRaster step, and the codec
// realizes steps that hold an EncodedRaster.
func Marshal(d *types.Dataset, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	line := func(parts ...string) {
		for i, p := range parts {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(p)
		}
		buf.WriteString(crlf)
	}

	if len(strings.Fields(d.ObjectType)) != 1 {
		return nil, &types.FormatError{Keyword: "DATASET", Field: "ObjectType", Msg: fmt.Sprintf("object type %q is not a single token", d.ObjectType)}
	}
	line("DATASET")
	switch d.Kind {
	case types.DatasetScalar:
		line(cardObjType, d.ObjectType)
		line(cardBegScl)
	case types.DatasetVector:
		line(cardVecType, d.ObjectType)
		line(cardBegVec)
	default:
		return nil, fmt.Errorf("%w: unknown dataset kind %d", types.ErrFormat, d.Kind)
	}
	line(cardObjID, cardfmt.Int(d.ObjectID))
	line(cardND, cardfmt.Int(d.NumberData))
	line(cardNC, cardfmt.Int(d.NumberCells))
	line(cardName, d.Name)

	var status []string
	for _, ts := range d.Rasters {
		line("TS", cardfmt.Int(ts.Status), cardfmt.Shortest(ts.Timestamp))
		if ts.Status == types.StatusOwnRaster {
			if status == nil {
				if opts.Mask == nil {
					return nil, &types.MissingCollaboratorError{
						Collaborator: "mask",
						Msg:          fmt.Sprintf("time step %d needs a status raster", ts.TimeStep),
					}
				}
				status = opts.Mask.StatusLines()
			}
			for _, s := range status {
				line(s)
			}
		}

		cells, err := realize(ts, opts)
		if err != nil {
			return nil, err
		}
		if len(cells) != d.NumberCells {
			return nil, &types.FormatError{
				Keyword: "TS",
				Msg:     fmt.Sprintf("time step %d has %d cells, dataset declares %d", ts.TimeStep, len(cells), d.NumberCells),
			}
		}
		for _, v := range cells {
			line(cardfmt.Fixed6(v))
		}
	}
	line(KindEnd.String())
	return buf.Bytes(), nil
}

// realize returns the cell values of ts, decoding its raster if needed.
func realize(ts types.TimeStepRaster, opts Options) ([]float64, error) {
	if ts.Raster == nil {
		return ts.Cells, nil
	}
	if opts.Codec == nil {
		return nil, &types.MissingCollaboratorError{
			Collaborator: "raster codec",
			Msg:          fmt.Sprintf("time step %d holds a %s raster", ts.TimeStep, ts.Raster.Format),
		}
	}
	cells, err := opts.Codec.Decode(*ts.Raster)
	if err != nil {
		return nil, fmt.Errorf("decoding time step %d: %w", ts.TimeStep, err)
	}
	return cells, nil
}

// Encode renders d and writes it to w in a single write.
func Encode(w io.Writer, d *types.Dataset, opts Options) error {
	data, err := Marshal(d, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: writing dataset: %w", types.ErrIO, err)
	}
	return nil
}
