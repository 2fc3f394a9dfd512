// Package dd implements the primitive codecs for the tachograph Data
// Dictionary value types: fixed-width big-endian integers, packed BCD,
// code-paged strings, TimeReal/Datef timestamps, and geographic
// coordinates. Every decoder here is a pure function from a byte slice to
// a Go value (or an error); none of them perform I/O or retain state
// across calls, matching the "pure function from bytes" model described
// for the decode pipeline as a whole.
package dd

// UnmarshalOptions carries the handful of knobs that primitive decoders in
// this package need. It is embedded by internal/card's own UnmarshalOptions
// so that card-level decoders inherit these methods without re-declaring
// them.
type UnmarshalOptions struct {
	// PreserveRawData asks decoders that build composite values to keep a
	// copy of the bytes they were built from. No decoder in this package or
	// in internal/card reads it: primitive scalar decoders ignore it, and
	// internal/card always keeps CalibrationRecord.RawData.
	PreserveRawData bool
}
