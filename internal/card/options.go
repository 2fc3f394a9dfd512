// Package card decodes a tachograph driver/company/workshop/control card
// download file into the generation-neutral model defined in
// internal/model. It sits one layer above internal/framing: framing knows
// only how to bracket (tag, length, payload) triples and recurse into
// containers, while card owns the (generation, tag) registry that decides
// what each tag means, dispatches to the per-record decoders below, and
// pairs data blocks with their trailing signature blocks.
package card

import (
	"github.com/haulageworks/tachograph-go/internal/dd"
)

// UnmarshalOptions provides context for decoding a card file.
//
// The zero value is valid: it decodes strictly on data tags (unrecognized
// tags become model.RawUnparsed entries rather than aborting the file) but
// permits the G2.2 fallback framing heuristics described on StrictG22Framing,
// since real-world G2.2 downloads routinely need them to frame at all.
type UnmarshalOptions struct {
	// Embed dd.UnmarshalOptions to inherit all data dictionary unmarshal
	// methods.
	dd.UnmarshalOptions

	// StrictG22Framing disables the fallback framing heuristics used for
	// G2.2 downloads that omit a length-of-length byte some readers
	// expect, requiring Appendix 1B/1C-conformant framing only. Default
	// false, so the heuristics run by default. See internal/framing's
	// fallback candidate chain.
	StrictG22Framing bool
}
