package wms

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/hydrocard/internal/cardfmt"
	"github.com/mesh-intelligence/hydrocard/internal/chunk"
	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

// DecodeHeader decodes a DATASET chunk into a Dataset with no rasters.
func DecodeHeader(c *chunk.Chunk) (types.Dataset, error) {
	var d types.Dataset
	if len(c.Lines[0].Fields) != 1 {
		return d, &types.FormatError{Line: c.Line(), Keyword: "DATASET", Msg: "unexpected fields after keyword"}
	}

	var (
		tagCard, marker        string
		haveID, haveND, haveNC bool
	)
	for _, ln := range c.Body() {
		if ln.Blank() {
			continue
		}
		card := ln.Keyword()
		switch card {
		case cardObjType, cardVecType:
			if err := wantFields(ln, 1); err != nil {
				return d, err
			}
			tagCard = card
			d.ObjectType = ln.Fields[1]
		case cardBegScl, cardBegVec:
			if err := wantFields(ln, 0); err != nil {
				return d, err
			}
			marker = card
		case cardObjID, cardND, cardNC:
			if err := wantFields(ln, 1); err != nil {
				return d, err
			}
			v, err := cardfmt.ParseInt(ln.Fields[1])
			if err != nil {
				return d, &types.FormatError{Line: ln.Number, Keyword: card, Field: card, Msg: "not an integer", Err: err}
			}
			switch card {
			case cardObjID:
				d.ObjectID, haveID = v, true
			case cardND:
				d.NumberData, haveND = v, true
			default:
				if v < 0 {
					return d, &types.FormatError{Line: ln.Number, Keyword: card, Field: card, Msg: "negative cell count"}
				}
				d.NumberCells, haveNC = v, true
			}
		case cardName:
			d.Name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(ln.Text), cardName))
		default:
			return d, &types.FormatError{Line: ln.Number, Keyword: "DATASET", Msg: fmt.Sprintf("unknown header card %q", card)}
		}
	}

	missing := func(what string) error {
		return &types.FormatError{Line: c.Line(), Keyword: "DATASET", Msg: "missing " + what}
	}
	switch {
	case marker == "":
		return d, missing("BEGSCL or BEGVEC")
	case tagCard == "":
		return d, missing("OBJTYPE or VECTYPE")
	case !haveID:
		return d, missing(cardObjID)
	case !haveND:
		return d, missing(cardND)
	case !haveNC:
		return d, missing(cardNC)
	}

	d.Kind = types.DatasetScalar
	wantTag := cardObjType
	if marker == cardBegVec {
		d.Kind = types.DatasetVector
		wantTag = cardVecType
	}
	if tagCard != wantTag {
		return d, &types.FormatError{Line: c.Line(), Keyword: "DATASET", Msg: fmt.Sprintf("%s used with %s", tagCard, marker)}
	}
	return d, nil
}

func wantFields(ln chunk.Line, n int) error {
	if got := len(ln.Fields) - 1; got != n {
		return &types.FormatError{
			Line:    ln.Number,
			Keyword: ln.Keyword(),
			Msg:     fmt.Sprintf("want %d fields, got %d", n, got),
		}
	}
	return nil
}

// DecodeTimeStep decodes a TS chunk. The chunk body is read as one token
// stream: numberCells status tokens when the status flag is
// types.StatusOwnRaster, then numberCells cell values. Status tokens are
// discarded; the mask re-supplies them on write. TimeStep is left zero.
func DecodeTimeStep(c *chunk.Chunk, numberCells int) (types.TimeStepRaster, error) {
	var ts types.TimeStepRaster
	head := c.Lines[0]
	if err := wantFields(head, 2); err != nil {
		return ts, err
	}
	var err error
	if ts.Status, err = cardfmt.ParseInt(head.Fields[1]); err != nil {
		return ts, &types.FormatError{Line: head.Number, Keyword: "TS", Field: "iStatus", Msg: "not an integer", Err: err}
	}
	if ts.Timestamp, err = cardfmt.ParseFloat(head.Fields[2]); err != nil {
		return ts, &types.FormatError{Line: head.Number, Keyword: "TS", Field: "timestamp", Msg: "not a number", Err: err}
	}

	type token struct {
		text string
		line int
	}
	var toks []token
	for _, ln := range c.Body() {
		for _, f := range ln.Fields {
			toks = append(toks, token{f, ln.Number})
		}
	}

	skip := 0
	if ts.Status == types.StatusOwnRaster {
		skip = numberCells
	}
	want := skip + numberCells
	switch {
	case len(toks) < want:
		last := head.Number
		if len(toks) > 0 {
			last = toks[len(toks)-1].line
		}
		return ts, &types.TruncatedInputError{Line: last, Keyword: "TS", What: "values", Want: want, Got: len(toks)}
	case len(toks) > want:
		return ts, &types.FormatError{
			Line:    toks[want].line,
			Keyword: "TS",
			Msg:     fmt.Sprintf("want %d values, got %d", want, len(toks)),
		}
	}

	ts.Cells = make([]float64, numberCells)
	for i, tok := range toks[skip:] {
		v, err := cardfmt.ParseFloat(tok.text)
		if err != nil {
			return ts, &types.FormatError{Line: tok.line, Keyword: "TS", Field: fmt.Sprintf("cell %d", i+1), Msg: "not a number", Err: err}
		}
		ts.Cells[i] = v
	}
	return ts, nil
}

// decodeEnd checks that an ENDDS chunk carries nothing but the keyword.
func decodeEnd(c *chunk.Chunk) error {
	if err := wantFields(c.Lines[0], 0); err != nil {
		return err
	}
	for _, ln := range c.Body() {
		if !ln.Blank() {
			return &types.FormatError{Line: ln.Number, Keyword: "ENDDS", Msg: fmt.Sprintf("unexpected line %q", ln.Text)}
		}
	}
	return nil
}
