package types

import "fmt"

// Network is the decoded form of a storm pipe network (.spn) file.
type Network struct {
	Connections    []Connection    `json:"connections"`
	SuperJunctions []SuperJunction `json:"super_junctions"`
	SuperLinks     []SuperLink     `json:"super_links"`
}

// Connection is an edge from a SuperLink to its upstream and downstream
// SuperJunctions. It references entities by number only.
type Connection struct {
	SlinkNumber     int `json:"slink_number"`
	UpSjuncNumber   int `json:"up_sjunc_number"`
	DownSjuncNumber int `json:"down_sjunc_number"`
}

// SuperJunction is a manhole-like junction joining SuperLinks.
type SuperJunction struct {
	Number            int     `json:"sjunc_number"`
	GroundSurfaceElev float64 `json:"ground_surface_elev"`
	InvertElev        float64 `json:"invert_elev"`
	ManholeSA         float64 `json:"manhole_sa"`
	InletCode         int     `json:"inlet_code"`
	LinkOrCellI       int     `json:"link_or_cell_i"`
	NodeOrCellJ       int     `json:"node_or_cell_j"`
	WeirSideLength    float64 `json:"weir_side_length"`
	OrificeDiameter   float64 `json:"orifice_diameter"`
}

// SuperLink is a pipe-bearing link. Nodes and Pipes keep file order.
type SuperLink struct {
	Number   int         `json:"slink_number"`
	NumPipes int         `json:"num_pipes"`
	Nodes    []SuperNode `json:"nodes"`
	Pipes    []Pipe      `json:"pipes"`
}

// CountMismatch reports whether the declared pipe count differs from the
// number of pipes actually attached. Decoding never corrects the mismatch.
func (l SuperLink) CountMismatch() bool {
	return len(l.Pipes) != l.NumPipes
}

// SuperNode is a node internal to a SuperLink.
type SuperNode struct {
	Number            int     `json:"node_number"`
	GroundSurfaceElev float64 `json:"ground_surface_elev"`
	InvertElev        float64 `json:"invert_elev"`
	ManholeSA         float64 `json:"manhole_sa"`
	InletCode         int     `json:"inlet_code"`
	CellI             int     `json:"cell_i"`
	CellJ             int     `json:"cell_j"`
	WeirSideLength    float64 `json:"weir_side_length"`
	OrificeDiameter   float64 `json:"orifice_diameter"`
}

// Pipe is a single pipe segment within a SuperLink.
type Pipe struct {
	Number           int     `json:"pipe_number"`
	XSecType         int     `json:"xsec_type"`
	DiameterOrHeight float64 `json:"diameter_or_height"`
	Width            float64 `json:"width"`
	Slope            float64 `json:"slope"`
	Roughness        float64 `json:"roughness"`
	Length           float64 `json:"length"`
	Conductance      float64 `json:"conductance"`
	DrainSpacing     float64 `json:"drain_spacing"`
}

// Validate checks the cross-reference invariants of a fully assembled
// network: SuperJunction numbers are unique, and every Connection names an
// existing SuperLink and two existing SuperJunctions. Decoding does not call
// Validate; the grammar alone does not guarantee these invariants.
func (n *Network) Validate() error {
	sjuncs := make(map[int]bool, len(n.SuperJunctions))
	for _, sj := range n.SuperJunctions {
		if sjuncs[sj.Number] {
			return fmt.Errorf("%w: duplicate super junction %d", ErrInvalidReference, sj.Number)
		}
		sjuncs[sj.Number] = true
	}
	slinks := make(map[int]bool, len(n.SuperLinks))
	for _, sl := range n.SuperLinks {
		slinks[sl.Number] = true
	}
	for i, c := range n.Connections {
		if !slinks[c.SlinkNumber] {
			return fmt.Errorf("%w: connection %d references super link %d", ErrInvalidReference, i+1, c.SlinkNumber)
		}
		if !sjuncs[c.UpSjuncNumber] {
			return fmt.Errorf("%w: connection %d references upstream super junction %d", ErrInvalidReference, i+1, c.UpSjuncNumber)
		}
		if !sjuncs[c.DownSjuncNumber] {
			return fmt.Errorf("%w: connection %d references downstream super junction %d", ErrInvalidReference, i+1, c.DownSjuncNumber)
		}
	}
	return nil
}

// SuperLink returns the link with the given number.
func (n *Network) SuperLink(number int) (SuperLink, bool) {
	for _, sl := range n.SuperLinks {
		if sl.Number == number {
			return sl, true
		}
	}
	return SuperLink{}, false
}
