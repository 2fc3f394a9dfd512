package tachograph

import (
	"github.com/haulageworks/tachograph-go/internal/card"
	"github.com/haulageworks/tachograph-go/internal/model"
	"github.com/haulageworks/tachograph-go/internal/timeline"
)

// Re-exported model types: the public surface of this package names
// entities from internal/model directly rather than wrapping them, since
// the model package has no behavior of its own to hide.
type (
	File                = model.File
	Generation          = model.Generation
	CardApplication     = model.CardApplication
	Driver              = model.Driver
	Licence             = model.Licence
	Activity            = model.Activity
	Slot                = model.Slot
	ActivityKind        = model.ActivityKind
	ActivityChangeInfo  = model.ActivityChangeInfo
	DailyActivityRecord = model.DailyActivityRecord
	VehicleUsedRecord   = model.VehicleUsedRecord
	EventRecord         = model.EventRecord
	FaultRecord         = model.FaultRecord
	PlaceRecord         = model.PlaceRecord
	GNSSPoint           = model.GNSSPoint
	CalibrationRecord   = model.CalibrationRecord
	SignatureBlock      = model.SignatureBlock
	SignatureAlgorithm  = model.SignatureAlgorithm
	RawUnparsed         = model.RawUnparsed
	Warning             = model.Warning
	WarningCode         = model.WarningCode
	MalformedFile       = model.MalformedFile
	Severity            = model.Severity
	Infraction          = model.Infraction
)

const (
	GenerationUnspecified = model.GenerationUnspecified
	GenerationG1          = model.GenerationG1
	GenerationG2          = model.GenerationG2
	GenerationG22         = model.GenerationG22
)

const (
	SignatureAlgorithmUnspecified = model.SignatureAlgorithmUnspecified
	SignatureAlgorithmRSASHA1     = model.SignatureAlgorithmRSASHA1
	SignatureAlgorithmECDSA       = model.SignatureAlgorithmECDSA
)

// DecodeOptions configures Decode, mirroring the internal per-layer
// UnmarshalOptions method-receiver pattern at the public boundary.
//
// The zero value is valid and decodes strictly on data tags: unrecognized
// tags become RawUnparsed entries rather than aborting the file. The G2.2
// fallback framing heuristics are permitted by default, since real-world
// G2.2 downloads routinely need them to frame at all.
type DecodeOptions struct {
	// StrictG22Framing disables the fallback framing heuristics. They exist
	// for G2.2 downloads that omit a length-of-length byte some readers
	// expect, but while enabled they apply to every generation's framing;
	// when true, each record must frame under its generation's primary
	// framing (STAP for G1, BER-TLV for G2/G2.2). Default false.
	StrictG22Framing bool
}

// Decode parses a complete .ddd download and reconstructs its driver
// activity timeline. It returns a *MalformedFile error only when the
// input cannot be framed at all (too short to contain a generation
// marker, or a framing break on the very first record); any other
// decode problem is recorded on the returned File's RawUnparsed or
// Warnings instead.
func Decode(data []byte) (*File, error) {
	return DecodeOptions{}.Decode(data)
}

// Decode is the configurable form of the package-level Decode function.
func (o DecodeOptions) Decode(data []byte) (*File, error) {
	opts := card.UnmarshalOptions{StrictG22Framing: o.StrictG22Framing}
	file, err := opts.Decode(data)
	if err != nil {
		return nil, err
	}
	file.Activities = timeline.Build(file.DailyActivityRecords)
	return file, nil
}
