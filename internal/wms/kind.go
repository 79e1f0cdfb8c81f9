package wms

import "github.com/mesh-intelligence/hydrocard/internal/chunk"

// Kind enumerates the record kinds of the dataset grammar.
type Kind int

// Record kinds.
const (
	KindDataset Kind = iota + 1
	KindTimeStep
	KindEnd
)

var kindKeywords = [...]string{
	KindDataset:  "DATASET",
	KindTimeStep: "TS",
	KindEnd:      "ENDDS",
}

// String returns the card keyword for k.
func (k Kind) String() string {
	if k < KindDataset || k > KindEnd {
		return "UNKNOWN"
	}
	return kindKeywords[k]
}

// KindOf maps a card keyword to its record kind.
func KindOf(keyword string) (Kind, bool) {
	for k := KindDataset; k <= KindEnd; k++ {
		if kindKeywords[k] == keyword {
			return k, true
		}
	}
	return 0, false
}

// Grammar is the chunking grammar for dataset files. Header cards and cell
// values are continuation lines of their DATASET and TS chunks.
var Grammar = chunk.Grammar{
	Top: []string{KindDataset.String(), KindTimeStep.String(), KindEnd.String()},
}

// Header cards inside the DATASET chunk.
const (
	cardObjType = "OBJTYPE"
	cardVecType = "VECTYPE"
	cardBegScl  = "BEGSCL"
	cardBegVec  = "BEGVEC"
	cardObjID   = "OBJID"
	cardND      = "ND"
	cardNC      = "NC"
	cardName    = "NAME"
)
