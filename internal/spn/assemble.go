package spn

import (
	"fmt"

	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

// Assemble builds a Network from decoded records, in record order. Nested
// NODE and PIPE records must arrive inside their SLINK record; a bare NODE
// or PIPE record is an AssemblyError.
func Assemble(records []Record) (*types.Network, error) {
	n := &types.Network{}
	for _, rec := range records {
		switch rec.Kind {
		case KindConnect:
			n.Connections = append(n.Connections, rec.Connect)
		case KindSjunc:
			n.SuperJunctions = append(n.SuperJunctions, rec.Sjunc)
		case KindSlink:
			n.SuperLinks = append(n.SuperLinks, rec.Slink)
		case KindNode, KindPipe:
			return nil, &types.AssemblyError{Line: rec.Line, Keyword: rec.Kind.String(), Msg: "record outside any SLINK"}
		default:
			panic(fmt.Sprintf("spn: unhandled record kind %d", rec.Kind))
		}
	}
	return n, nil
}
