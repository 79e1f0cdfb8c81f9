// Package grid reads GRASS ASCII grids: the mask that shapes dataset cell
// streams, and the raster codec used to store time steps in spatial mode.
package grid

import (
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/hydrocard/internal/cardfmt"
	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

// headerTokens is the number of tokens in a GRASS ASCII header: six
// "key: value" pairs.
const headerTokens = 12

// header holds the GRASS ASCII header keys.
type header struct {
	North, South, East, West float64
	Rows, Cols               int
}

// Geometry converts the header to a grid geometry. Cells are square and
// the cell size is truncated to a whole number of map units.
func (h header) Geometry() types.Geometry {
	size := h.East - h.West
	if size < 0 {
		size = -size
	}
	return types.Geometry{
		Columns:  h.Cols,
		Rows:     h.Rows,
		West:     h.West,
		North:    h.North,
		CellSize: float64(int(size / float64(h.Cols))),
	}
}

// parseGrass splits GRASS ASCII text into its header and value tokens.
func parseGrass(src string, text string) (header, []string, error) {
	var h header
	toks := strings.Fields(text)
	if len(toks) < headerTokens {
		return h, nil, &types.TruncatedInputError{Keyword: src, What: "header tokens", Want: headerTokens, Got: len(toks)}
	}

	seen := make(map[string]bool, headerTokens/2)
	for i := 0; i < headerTokens; i += 2 {
		key := strings.ToLower(strings.TrimSuffix(toks[i], ":"))
		val := toks[i+1]
		if seen[key] {
			return h, nil, &types.FormatError{Keyword: src, Field: key, Msg: "duplicate header key"}
		}
		seen[key] = true

		var err error
		switch key {
		case "north":
			h.North, err = cardfmt.ParseFloat(val)
		case "south":
			h.South, err = cardfmt.ParseFloat(val)
		case "east":
			h.East, err = cardfmt.ParseFloat(val)
		case "west":
			h.West, err = cardfmt.ParseFloat(val)
		case "rows":
			h.Rows, err = cardfmt.ParseInt(val)
		case "cols":
			h.Cols, err = cardfmt.ParseInt(val)
		default:
			return h, nil, &types.FormatError{Keyword: src, Field: key, Msg: "unknown header key"}
		}
		if err != nil {
			return h, nil, &types.FormatError{Keyword: src, Field: key, Msg: "not a number", Err: err}
		}
	}
	if h.Rows <= 0 || h.Cols <= 0 {
		return h, nil, &types.FormatError{Keyword: src, Msg: fmt.Sprintf("invalid grid size %dx%d", h.Cols, h.Rows)}
	}

	vals := toks[headerTokens:]
	if want := h.Rows * h.Cols; len(vals) != want {
		if len(vals) < want {
			return h, nil, &types.TruncatedInputError{Keyword: src, What: "cells", Want: want, Got: len(vals)}
		}
		return h, nil, &types.FormatError{Keyword: src, Msg: fmt.Sprintf("want %d cells, got %d", want, len(vals))}
	}
	return h, vals, nil
}

// writeGrass renders a GRASS ASCII grid, one row per line.
func writeGrass(w io.Writer, h header, cells []string) error {
	_, err := fmt.Fprintf(w, "north: %s\nsouth: %s\neast: %s\nwest: %s\nrows: %d\ncols: %d\n",
		trimFloat(h.North), trimFloat(h.South), trimFloat(h.East), trimFloat(h.West), h.Rows, h.Cols)
	if err != nil {
		return err
	}
	for r := 0; r < h.Rows; r++ {
		row := cells[r*h.Cols : (r+1)*h.Cols]
		if _, err := io.WriteString(w, strings.Join(row, " ")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// trimFloat renders v without a trailing ".0" for whole numbers.
func trimFloat(v float64) string {
	return strings.TrimSuffix(cardfmt.Shortest(v), ".0")
}
