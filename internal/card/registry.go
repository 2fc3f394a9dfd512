package card

import "github.com/haulageworks/tachograph-go/internal/model"

// signatureBit marks a wire tag as the signature block for the data tag
// obtained by clearing it. None of the data tags below set this bit, so
// it never collides with a real tag value; a signature block shares
// every other bit of its data block's tag.
const signatureBit = 0x8000

// Generation 1 (STAP) Elementary File tags: a data tag dispatches to
// exactly one decoder, and is never derived from another tag by
// arithmetic. The data-bearing EFs use their Annex 1B identifiers; ICC,
// IC, CurrentUsage, ControlActivityData, VehicleUnitsUsed and the three
// certificate EFs use non-colliding placeholder values (see DESIGN.md).
const (
	tagICC                      = 0x0002
	tagIC                       = 0x0005
	tagApplicationIdentification = 0x0501
	tagEventsData                = 0x0502
	tagFaultsData                = 0x0503
	tagDriverActivityDataG1      = 0x0504
	tagVehiclesUsed              = 0x0505
	tagPlaces                    = 0x0506
	tagCurrentUsage              = 0x0507
	tagControlActivityData       = 0x0508
	tagCardCertificate           = 0x0509
	tagCACertificate             = 0x050A
	tagLinkCertificate           = 0x050B
	tagSpecificConditions        = 0x050C
	tagCardDownload              = 0x050D
	tagVehicleUnitsUsed          = 0x050E // in commonDataTags: recognized on every generation
	tagIdentificationG1          = 0x0520
	tagDrivingLicenceInfo        = 0x0521
)

// Generation 2 (BER-TLV) tags that differ from their G1 counterpart, plus
// the G2-only additions.
const (
	tagIdentificationG2    = 0x0201
	tagGNSSPlacesG2        = 0x0225
	tagLoadUnloadG2        = 0x0226
	tagTrailerRegsG2       = 0x0227
	tagBorderCrossingsG2   = 0x0228
	tagDriverActivityDataG2 = 0x0524
)

// Generation 2.2 tags that differ from G2, introduced by Reg. 2023/980.
// G2.2 downloads otherwise reuse the G2 tag set (tagIdentificationG2,
// tagDriverActivityDataG2, and all of the generation-common tags below).
const (
	tagGNSSAccumulatedDrivingG22 = 0x0525
	tagLoadUnloadG22             = 0x0526
	tagTrailerRegsG22            = 0x0527
	tagGNSSPlacesG22             = 0x0528
	tagLoadSensorG22             = 0x0529
	tagBorderCrossingsG22        = 0x052A
)

// envelope container tags: the root framing marker for G2/G2.2 downloads
// doubles as the container tag bracketing every EF record in the file.
const (
	tagEnvelopeG2  = 0x7621
	tagEnvelopeG22 = 0x7631
)

// recordKind names the semantic Elementary File a data tag belongs to,
// independent of which generation's wire tag carries it.
type recordKind int

const (
	recordUnknown recordKind = iota
	recordICC
	recordIC
	recordApplicationIdentification
	recordIdentification
	recordEventsData
	recordFaultsData
	recordDriverActivityData
	recordVehiclesUsed
	recordPlaces
	recordCurrentUsage
	recordControlActivityData
	recordDrivingLicenceInfo
	recordSpecificConditions
	recordVehicleUnitsUsed
	recordGNSSPlaces
	recordCardCertificate
	recordCACertificate
	recordLinkCertificate
	recordCardDownload
	recordLoadUnload
	recordTrailerRegistrations
	recordBorderCrossings
	recordGNSSAccumulatedDriving
	recordLoadSensor
)

func (k recordKind) String() string {
	switch k {
	case recordICC:
		return "ICC"
	case recordIC:
		return "IC"
	case recordApplicationIdentification:
		return "ApplicationIdentification"
	case recordIdentification:
		return "Identification"
	case recordEventsData:
		return "EventsData"
	case recordFaultsData:
		return "FaultsData"
	case recordDriverActivityData:
		return "DriverActivityData"
	case recordVehiclesUsed:
		return "VehiclesUsed"
	case recordPlaces:
		return "Places"
	case recordCurrentUsage:
		return "CurrentUsage"
	case recordControlActivityData:
		return "ControlActivityData"
	case recordDrivingLicenceInfo:
		return "DrivingLicenceInfo"
	case recordSpecificConditions:
		return "SpecificConditions"
	case recordVehicleUnitsUsed:
		return "VehicleUnitsUsed"
	case recordGNSSPlaces:
		return "GNSSPlaces"
	case recordCardCertificate:
		return "CardCertificate"
	case recordCACertificate:
		return "CACertificate"
	case recordLinkCertificate:
		return "LinkCertificate"
	case recordCardDownload:
		return "CardDownload"
	case recordLoadUnload:
		return "LoadUnload"
	case recordTrailerRegistrations:
		return "TrailerRegistrations"
	case recordBorderCrossings:
		return "BorderCrossings"
	case recordGNSSAccumulatedDriving:
		return "GNSSAccumulatedDriving"
	case recordLoadSensor:
		return "LoadSensor"
	default:
		return "Unknown"
	}
}

// commonDataTags holds the Elementary File tags whose wire value is the
// same across all three generations.
var commonDataTags = map[uint16]recordKind{
	tagICC:                       recordICC,
	tagIC:                        recordIC,
	tagApplicationIdentification: recordApplicationIdentification,
	tagEventsData:                recordEventsData,
	tagFaultsData:                recordFaultsData,
	tagVehiclesUsed:              recordVehiclesUsed,
	tagPlaces:                    recordPlaces,
	tagCurrentUsage:              recordCurrentUsage,
	tagControlActivityData:       recordControlActivityData,
	tagCardCertificate:           recordCardCertificate,
	tagCACertificate:             recordCACertificate,
	tagLinkCertificate:           recordLinkCertificate,
	tagSpecificConditions:        recordSpecificConditions,
	tagCardDownload:              recordCardDownload,
	tagVehicleUnitsUsed:          recordVehicleUnitsUsed,
}

// g1OnlyDataTags holds the tags that take on a different meaning (or none)
// outside Generation 1.
var g1OnlyDataTags = map[uint16]recordKind{
	tagIdentificationG1:     recordIdentification,
	tagDrivingLicenceInfo:   recordDrivingLicenceInfo,
	tagDriverActivityDataG1: recordDriverActivityData,
}

// g2DataTags holds the tags introduced by, or renumbered in, Generation 2.
// Generation 2.2 inherits this set in addition to g22OnlyDataTags.
var g2DataTags = map[uint16]recordKind{
	tagIdentificationG2:     recordIdentification,
	tagDriverActivityDataG2: recordDriverActivityData,
	tagGNSSPlacesG2:         recordGNSSPlaces,
	tagLoadUnloadG2:         recordLoadUnload,
	tagTrailerRegsG2:        recordTrailerRegistrations,
	tagBorderCrossingsG2:    recordBorderCrossings,
}

// g22OnlyDataTags holds the tags Reg. 2023/980 introduced for Generation
// 2.2 that have no Generation 2 equivalent.
var g22OnlyDataTags = map[uint16]recordKind{
	tagGNSSAccumulatedDrivingG22: recordGNSSAccumulatedDriving,
	tagLoadUnloadG22:             recordLoadUnload,
	tagTrailerRegsG22:            recordTrailerRegistrations,
	tagGNSSPlacesG22:             recordGNSSPlaces,
	tagLoadSensorG22:             recordLoadSensor,
	tagBorderCrossingsG22:        recordBorderCrossings,
}

// recordKindFor resolves a data tag to its semantic Elementary File for
// the given generation. G1's EF_Driver_Activity_Data (0x0504) is a
// distinct wire value from G2/G2.2's (0x0524); both resolve to
// recordDriverActivityData. Likewise tagIdentificationG1 (0x0520) and
// tagIdentificationG2 (0x0201) both resolve to recordIdentification.
func recordKindFor(gen model.Generation, tag uint16) (recordKind, bool) {
	if k, ok := commonDataTags[tag]; ok {
		return k, true
	}
	switch gen {
	case model.GenerationG1:
		k, ok := g1OnlyDataTags[tag]
		return k, ok
	case model.GenerationG2:
		k, ok := g2DataTags[tag]
		return k, ok
	case model.GenerationG22:
		if k, ok := g2DataTags[tag]; ok {
			return k, true
		}
		k, ok := g22OnlyDataTags[tag]
		return k, ok
	default:
		return recordUnknown, false
	}
}

// dataTagOf clears the signature marker bit, recovering the data tag a
// signature tag belongs to. It is the identity function for a data tag.
func dataTagOf(tag uint16) uint16 {
	return tag &^ signatureBit
}

// isSignatureTag reports whether tag's signature marker bit is set.
func isSignatureTag(tag uint16) bool {
	return tag&signatureBit != 0
}

// isContainer implements framing.IsContainerFunc: only the root envelope
// tag of a G2/G2.2 download brackets nested content; every EF tag is a
// leaf at the framing layer, however structured its payload is once
// handed to the record decoders below.
func isContainer(gen model.Generation, tag uint16) bool {
	switch gen {
	case model.GenerationG2:
		return tag == tagEnvelopeG2
	case model.GenerationG22:
		return tag == tagEnvelopeG22
	default:
		return false
	}
}

// tagName returns a human-readable label for a data tag, used in
// model.RawUnparsed.Reason and model.Warning messages when a tag isn't
// recognized by any decoder for the given generation.
func tagName(gen model.Generation, tag uint16) string {
	if k, ok := recordKindFor(gen, dataTagOf(tag)); ok {
		return k.String()
	}
	return "Unknown"
}
