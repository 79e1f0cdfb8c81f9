package spn

import (
	"fmt"

	"github.com/mesh-intelligence/hydrocard/internal/cardfmt"
	"github.com/mesh-intelligence/hydrocard/internal/chunk"
	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

// Field counts after the keyword.
const (
	connectFields = 3
	sjuncFields   = 9
	slinkFields   = 2
	nodeFields    = 9
	pipeFields    = 9
)

// Record is one decoded chunk. Only the field matching Kind is set.
type Record struct {
	Kind    Kind
	Line    int
	Connect types.Connection
	Sjunc   types.SuperJunction
	Slink   types.SuperLink
}

// fieldReader parses the tokens of one line, remembering the first error.
type fieldReader struct {
	line chunk.Line
	kw   string
	err  error
}

func newFieldReader(ln chunk.Line, kw string, want int) *fieldReader {
	f := &fieldReader{line: ln, kw: kw}
	if got := len(ln.Fields) - 1; got != want {
		f.err = &types.FormatError{
			Line:    ln.Number,
			Keyword: kw,
			Msg:     fmt.Sprintf("want %d fields, got %d", want, got),
		}
	}
	return f
}

// int parses field i (1-based, after the keyword).
func (f *fieldReader) int(i int, name string) int {
	if f.err != nil {
		return 0
	}
	v, err := cardfmt.ParseInt(f.line.Fields[i])
	if err != nil {
		f.err = &types.FormatError{Line: f.line.Number, Keyword: f.kw, Field: name, Msg: "not an integer", Err: err}
	}
	return v
}

func (f *fieldReader) float(i int, name string) float64 {
	if f.err != nil {
		return 0
	}
	v, err := cardfmt.ParseFloat(f.line.Fields[i])
	if err != nil {
		f.err = &types.FormatError{Line: f.line.Number, Keyword: f.kw, Field: name, Msg: "not a number", Err: err}
	}
	return v
}

// DecodeChunk turns one chunk into a Record. Orphaned NODE/PIPE chunks
// decode normally; rejecting them is the assembler's job.
func DecodeChunk(c *chunk.Chunk, opts Options) (Record, error) {
	kind, ok := KindOf(c.Keyword)
	if !ok {
		return Record{}, &types.FormatError{Line: c.Line(), Keyword: c.Keyword, Msg: "unrecognized record"}
	}
	rec := Record{Kind: kind, Line: c.Line()}
	var err error
	switch kind {
	case KindConnect:
		rec.Connect, err = decodeConnect(c.Lines[0])
		if err == nil {
			err = onlyBlank(c)
		}
	case KindSjunc:
		rec.Sjunc, err = decodeSjunc(c.Lines[0])
		if err == nil {
			err = onlyBlank(c)
		}
	case KindSlink:
		rec.Slink, err = decodeSlink(c, opts.StrictCounts)
	case KindNode, KindPipe:
		// Orphaned nested record; keep the kind so assembly can report it.
	default:
		panic(fmt.Sprintf("spn: unhandled record kind %d", kind))
	}
	return rec, err
}

// onlyBlank rejects continuation lines under a single-line record.
func onlyBlank(c *chunk.Chunk) error {
	for _, ln := range c.Body() {
		if !ln.Blank() {
			return &types.FormatError{Line: ln.Number, Keyword: c.Keyword, Msg: fmt.Sprintf("unexpected line %q", ln.Text)}
		}
	}
	return nil
}

func decodeConnect(ln chunk.Line) (types.Connection, error) {
	f := newFieldReader(ln, "CONNECT", connectFields)
	c := types.Connection{
		SlinkNumber:     f.int(1, "slinkNumber"),
		UpSjuncNumber:   f.int(2, "upSjuncNumber"),
		DownSjuncNumber: f.int(3, "downSjuncNumber"),
	}
	return c, f.err
}

func decodeSjunc(ln chunk.Line) (types.SuperJunction, error) {
	f := newFieldReader(ln, "SJUNC", sjuncFields)
	sj := types.SuperJunction{
		Number:            f.int(1, "sjuncNumber"),
		GroundSurfaceElev: f.float(2, "groundSurfaceElev"),
		InvertElev:        f.float(3, "invertElev"),
		ManholeSA:         f.float(4, "manholeSA"),
		InletCode:         f.int(5, "inletCode"),
		LinkOrCellI:       f.int(6, "linkOrCellI"),
		NodeOrCellJ:       f.int(7, "nodeOrCellJ"),
		WeirSideLength:    f.float(8, "weirSideLength"),
		OrificeDiameter:   f.float(9, "orificeDiameter"),
	}
	return sj, f.err
}

func decodeNode(ln chunk.Line) (types.SuperNode, error) {
	f := newFieldReader(ln, "NODE", nodeFields)
	n := types.SuperNode{
		Number:            f.int(1, "nodeNumber"),
		GroundSurfaceElev: f.float(2, "groundSurfaceElev"),
		InvertElev:        f.float(3, "invertElev"),
		ManholeSA:         f.float(4, "manholeSA"),
		InletCode:         f.int(5, "inletCode"),
		CellI:             f.int(6, "cellI"),
		CellJ:             f.int(7, "cellJ"),
		WeirSideLength:    f.float(8, "weirSideLength"),
		OrificeDiameter:   f.float(9, "orificeDiameter"),
	}
	return n, f.err
}

func decodePipe(ln chunk.Line) (types.Pipe, error) {
	f := newFieldReader(ln, "PIPE", pipeFields)
	p := types.Pipe{
		Number:           f.int(1, "pipeNumber"),
		XSecType:         f.int(2, "xSecType"),
		DiameterOrHeight: f.float(3, "diameterOrHeight"),
		Width:            f.float(4, "width"),
		Slope:            f.float(5, "slope"),
		Roughness:        f.float(6, "roughness"),
		Length:           f.float(7, "length"),
		Conductance:      f.float(8, "conductance"),
		DrainSpacing:     f.float(9, "drainSpacing"),
	}
	return p, f.err
}

// decodeSlink decodes the SLINK header and its nested NODE and PIPE lines
// in the order they appear.
func decodeSlink(c *chunk.Chunk, strict bool) (types.SuperLink, error) {
	f := newFieldReader(c.Lines[0], "SLINK", slinkFields)
	sl := types.SuperLink{
		Number:   f.int(1, "slinkNumber"),
		NumPipes: f.int(2, "numPipes"),
	}
	if f.err != nil {
		return sl, f.err
	}

	last := c.Line()
	for _, ln := range c.Body() {
		last = ln.Number
		switch {
		case ln.Blank():
			continue
		case ln.Nested && ln.Keyword() == KindNode.String():
			n, err := decodeNode(ln)
			if err != nil {
				return sl, err
			}
			sl.Nodes = append(sl.Nodes, n)
		case ln.Nested && ln.Keyword() == KindPipe.String():
			p, err := decodePipe(ln)
			if err != nil {
				return sl, err
			}
			sl.Pipes = append(sl.Pipes, p)
		default:
			return sl, &types.FormatError{Line: ln.Number, Keyword: "SLINK", Msg: fmt.Sprintf("unexpected line %q", ln.Text)}
		}
	}

	if strict {
		switch {
		case len(sl.Pipes) < sl.NumPipes:
			return sl, &types.TruncatedInputError{Line: last, Keyword: "SLINK", What: "pipes", Want: sl.NumPipes, Got: len(sl.Pipes)}
		case len(sl.Pipes) > sl.NumPipes:
			return sl, &types.FormatError{
				Line:    c.Line(),
				Keyword: "SLINK",
				Field:   "numPipes",
				Msg:     fmt.Sprintf("declares %d pipes, found %d", sl.NumPipes, len(sl.Pipes)),
			}
		}
	}
	return sl, nil
}
