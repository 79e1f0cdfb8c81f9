package spn

import "github.com/mesh-intelligence/hydrocard/internal/chunk"

// Kind enumerates the record kinds of the storm pipe network grammar.
type Kind int

// Record kinds.
const (
	KindConnect Kind = iota + 1
	KindSjunc
	KindSlink
	KindNode
	KindPipe
)

var kindKeywords = [...]string{
	KindConnect: "CONNECT",
	KindSjunc:   "SJUNC",
	KindSlink:   "SLINK",
	KindNode:    "NODE",
	KindPipe:    "PIPE",
}

// String returns the card keyword for k.
func (k Kind) String() string {
	if k < KindConnect || k > KindPipe {
		return "UNKNOWN"
	}
	return kindKeywords[k]
}

// KindOf maps a card keyword to its record kind.
func KindOf(keyword string) (Kind, bool) {
	for k := KindConnect; k <= KindPipe; k++ {
		if kindKeywords[k] == keyword {
			return k, true
		}
	}
	return 0, false
}

// Grammar is the chunking grammar for network files: NODE and PIPE records
// are nested inside SLINK chunks.
var Grammar = chunk.Grammar{
	Top: []string{KindConnect.String(), KindSjunc.String(), KindSlink.String()},
	Nested: map[string][]string{
		KindSlink.String(): {KindNode.String(), KindPipe.String()},
	},
}
