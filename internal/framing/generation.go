// Package framing implements the byte-cursor reader described for the
// decode pipeline's framing stage: generation detection, recursive
// container descent, and per-generation tag+length decoding. It knows
// nothing about what any particular tag means — that is the tag
// registry's and the record decoders' job, one layer up in internal/card.
// Framing only needs to know whether a tag is a container (so it can
// recurse) or a leaf (so it can hand the payload upward); the caller
// supplies that single predicate.
package framing

import (
	"encoding/binary"

	"github.com/haulageworks/tachograph-go/internal/model"
)

// DetectGeneration inspects the first two bytes of a file to determine its
// tachograph generation. Detection is a pure function of those two bytes:
// 0x7621 identifies G2, 0x7631 identifies G2.2, anything else is treated
// as G1.
func DetectGeneration(data []byte) model.Generation {
	if len(data) < 2 {
		return model.GenerationUnspecified
	}
	switch binary.BigEndian.Uint16(data[0:2]) {
	case 0x7621:
		return model.GenerationG2
	case 0x7631:
		return model.GenerationG22
	default:
		return model.GenerationG1
	}
}
