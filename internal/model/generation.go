// Package model defines the generation-neutral result tree produced by
// decoding a tachograph download file, and the compliance findings derived
// from it. It has no dependency on the framing, decoder, timeline, or
// compliance packages, which all produce or consume these types; this
// keeps the dependency graph a DAG with model at the bottom.
package model

// Generation identifies which of the three regulated tachograph generations
// produced a download file. The generation is detected once, from the first
// two bytes of the file (see the framing package), and is carried on every
// downstream result so that callers can reason about which tag set and
// record layouts were in play.
type Generation int

const (
	GenerationUnspecified Generation = iota
	GenerationG1
	GenerationG2
	GenerationG22
)

func (g Generation) String() string {
	switch g {
	case GenerationG1:
		return "G1"
	case GenerationG2:
		return "G2"
	case GenerationG22:
		return "G2.2"
	default:
		return "UNSPECIFIED"
	}
}
