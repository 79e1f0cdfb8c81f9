package spn

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

// Line templates. Spacing is part of the file format.
const (
	connectLine = "CONNECT  %d  %d  %d\n"
	sjuncLine   = "SJUNC  %d  %.2f  %.2f  %.6f  %d  %d  %d  %.6f  %.6f\n"
	slinkLine   = "SLINK   %d      %d\n"
	nodeLine    = "NODE  %d  %.2f  %.2f  %.6f  %d  %d  %d  %.6f  %.6f\n"
	pipeLine    = "PIPE  %d  %d  %.6f  %.6f  %.6f  %.6f  %.2f  %.6f  %.6f\n"
)

// Marshal renders n as network file text: every CONNECT line, then every
// SJUNC line, then each SLINK followed by its NODE lines and its PIPE lines.
func Marshal(n *types.Network) []byte {
	var buf bytes.Buffer
	for _, c := range n.Connections {
		fmt.Fprintf(&buf, connectLine, c.SlinkNumber, c.UpSjuncNumber, c.DownSjuncNumber)
	}
	for _, sj := range n.SuperJunctions {
		fmt.Fprintf(&buf, sjuncLine,
			sj.Number,
			sj.GroundSurfaceElev,
			sj.InvertElev,
			sj.ManholeSA,
			sj.InletCode,
			sj.LinkOrCellI,
			sj.NodeOrCellJ,
			sj.WeirSideLength,
			sj.OrificeDiameter)
	}
	for _, sl := range n.SuperLinks {
		fmt.Fprintf(&buf, slinkLine, sl.Number, sl.NumPipes)
		for _, nd := range sl.Nodes {
			fmt.Fprintf(&buf, nodeLine,
				nd.Number,
				nd.GroundSurfaceElev,
				nd.InvertElev,
				nd.ManholeSA,
				nd.InletCode,
				nd.CellI,
				nd.CellJ,
				nd.WeirSideLength,
				nd.OrificeDiameter)
		}
		for _, p := range sl.Pipes {
			fmt.Fprintf(&buf, pipeLine,
				p.Number,
				p.XSecType,
				p.DiameterOrHeight,
				p.Width,
				p.Slope,
				p.Roughness,
				p.Length,
				p.Conductance,
				p.DrainSpacing)
		}
	}
	return buf.Bytes()
}

// Encode writes n to w in a single write.
func Encode(w io.Writer, n *types.Network) error {
	if _, err := w.Write(Marshal(n)); err != nil {
		return fmt.Errorf("%w: writing network: %w", types.ErrIO, err)
	}
	return nil
}
