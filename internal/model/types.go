package model

import (
	"fmt"
	"time"
)

// File is the top-level, generation-neutral result of decoding a tachograph
// download file.
type File struct {
	Generation           Generation
	CardApplication      CardApplication
	Driver               Driver
	VehiclesUsed         []VehicleUsedRecord
	DailyActivityRecords []DailyActivityRecord
	Activities           []Activity
	Events               []EventRecord
	Faults               []FaultRecord
	Places               []PlaceRecord
	GNSSPoints           []GNSSPoint
	CalibrationRecords   []CalibrationRecord
	SignatureBlocks      []SignatureBlock
	RawUnparsed          []RawUnparsed
	Warnings             []Warning
}

// CardApplication carries the EF_Application_Identification fields that
// describe the card's type and structure version, independent of the
// specific driver it was issued to.
type CardApplication struct {
	TypeOfTachographCardID  byte
	CardStructureVersion    uint16
	NoOfEventsPerType       byte
	NoOfFaultsPerType       byte
	ActivityStructureLength uint16
	NoOfCardVehicleRecords  uint16
	NoOfCardPlaceRecords    byte
}

// Activity is one contiguous, same-(Slot,Kind,CardWithdrawn) run of driver
// activity, as reconstructed by the timeline builder from the raw
// ActivityChangeInfo stream of one or more DailyActivityRecords. Adjacent
// changes of the same kind are merged, and a run crossing midnight is
// split into one Activity per calendar day.
type Activity struct {
	Slot          Slot
	Kind          ActivityKind
	CardWithdrawn bool
	Start         time.Time
	End           time.Time
}

// DurationMinutes reports the activity's length, always minute-aligned
// because the timeline builder only ever places boundaries on minute
// offsets.
func (a Activity) DurationMinutes() int {
	return int(a.End.Sub(a.Start).Minutes())
}

// Licence holds a driver's driving-licence cross-reference, as stored
// alongside the card identification.
type Licence struct {
	Authority string
	Nation    string
	Number    string
}

// Driver holds the cardholder identity fields from EF_Identification.
// All strings have been stripped of space/0x00/0xFF padding.
type Driver struct {
	Surname            string
	FirstNames         string
	BirthDate          time.Time
	BirthDateRaw       [4]byte // preserved raw bytes, for the Datef/TimeReal fallback ambiguity
	BirthDateIsTimeReal bool
	CardNumber         string
	CardIssuingNation  string
	CardExpiry         time.Time
	PreferredLanguage  string
	Licence            Licence
}

// Slot identifies which of the two card slots an ActivityChangeInfo or
// Activity refers to.
type Slot int

const (
	SlotDriver Slot = iota
	SlotCoDriver
)

// ActivityKind is the four-valued driver-activity state defined by bits
// 12-11 of ActivityChangeInfo.
type ActivityKind int

const (
	ActivityRest ActivityKind = iota
	ActivityAvailability
	ActivityWork
	ActivityDriving
)

func (k ActivityKind) String() string {
	switch k {
	case ActivityRest:
		return "REST"
	case ActivityAvailability:
		return "AVAILABILITY"
	case ActivityWork:
		return "WORK"
	case ActivityDriving:
		return "DRIVING"
	default:
		return "UNKNOWN"
	}
}

// ActivityChangeInfo is the raw 2-byte activity-change bitfield, decoded
// into its five fields. MinuteOfDay is relative to the midnight of
// the DailyActivityRecord it was read from.
type ActivityChangeInfo struct {
	Slot         Slot
	Crew         bool
	CardWithdrawn bool
	Kind         ActivityKind
	MinuteOfDay  int
}

// DailyActivityRecord is one day's worth of activity changes as stored in
// the cyclic CardDriverActivity buffer.
type DailyActivityRecord struct {
	PreviousLength       uint16
	CurrentLength        uint16
	DayTimestamp         time.Time
	DailyPresenceCounter uint16
	DayDistanceKm        uint16
	Changes              []ActivityChangeInfo
}

// VehicleUsedRecord is one CardVehicleRecord entry.
type VehicleUsedRecord struct {
	OdometerBeginKm    uint32
	OdometerEndKm      uint32
	FirstUse           time.Time
	LastUse            time.Time
	Nation             string
	Plate              string
	VuDataBlockCounter string // BCD digits, empty when sentinel/absent
	VIN                string // only populated by G2 48-byte layout
	Empty              bool
}

// EventGroup names the six fixed groups a CardEventData record belongs to.
type EventGroup int

const (
	EventGroupUnspecified EventGroup = iota
	EventGroupTimeOverlap
	EventGroupLastCardSession
	EventGroupPowerSupplyInterruption
	EventGroupCardConflict
	EventGroupTimeDifference
	EventGroupDrivingWithoutCard
)

func (g EventGroup) String() string {
	switch g {
	case EventGroupTimeOverlap:
		return "TimeOverlap"
	case EventGroupLastCardSession:
		return "LastCardSession"
	case EventGroupPowerSupplyInterruption:
		return "PowerSupplyInterruption"
	case EventGroupCardConflict:
		return "CardConflict"
	case EventGroupTimeDifference:
		return "TimeDifference"
	case EventGroupDrivingWithoutCard:
		return "DrivingWithoutCard"
	default:
		return "Unknown"
	}
}

// VehicleRef identifies a vehicle by nation code and registration plate, as
// carried on event, fault, and control-activity records.
type VehicleRef struct {
	Nation string
	Plate  string
}

// EventRecord is one decoded, non-empty entry from a CardEventData group.
type EventRecord struct {
	Group     EventGroup
	TypeCode  byte
	Begin     time.Time
	End       time.Time
	Vehicle   VehicleRef
}

// FaultGroup names the fixed fault-record groups, analogous to EventGroup.
type FaultGroup int

const (
	FaultGroupUnspecified FaultGroup = iota
	FaultGroupCardFault
	FaultGroupVUFault
	FaultGroupSensorFault
)

func (g FaultGroup) String() string {
	switch g {
	case FaultGroupCardFault:
		return "CardFault"
	case FaultGroupVUFault:
		return "VUFault"
	case FaultGroupSensorFault:
		return "SensorFault"
	default:
		return "Unknown"
	}
}

// FaultRecord is one decoded, non-empty entry from CardFaultData.
type FaultRecord struct {
	Group    FaultGroup
	TypeCode byte
	Begin    time.Time
	End      time.Time
	Vehicle  VehicleRef
}

// PlaceRecord is one CardPlaceDailyWorkPeriod entry, optionally enriched
// with a GNSS-accurate position (tag 0x0225 / 0x0528).
type PlaceRecord struct {
	EntryTime     time.Time
	EntryTypeDaily string
	DailyWorkPeriodCountry string
	VehicleOdometerKm uint32
	GNSS          *GNSSPoint
}

// GNSSPoint is a decoded WGS84 position, scaled from the signed 32-bit
// big-endian wire values by 1e-7 degrees.
type GNSSPoint struct {
	Timestamp time.Time
	Latitude  float64
	Longitude float64
}

// CalibrationRecord is one VuCalibrationRecord / SpecificConditionRecord
// entry, covering both the 105-byte and 161-byte layouts.
type CalibrationRecord struct {
	Timestamp   time.Time
	RecordSize  int
	WorkshopName string
	VIN         string
	RawData     []byte
}

// SignatureAlgorithm names the cryptographic scheme used for a signature
// block, as determined by generation.
type SignatureAlgorithm int

const (
	SignatureAlgorithmUnspecified SignatureAlgorithm = iota
	SignatureAlgorithmRSASHA1
	SignatureAlgorithmECDSA
)

// SignatureBlock associates a signed data block (identified by its tag and
// a reference to the bytes that were signed) with its signature bytes.
// Orphan is set when no data block could be paired.
type SignatureBlock struct {
	Tag          uint16
	DataRef      []byte
	SignatureBytes []byte
	Algorithm    SignatureAlgorithm
	Orphan       bool
}

// RawUnparsed is an uninterpreted chunk of the file: either an unknown tag,
// or the remainder of a container whose length could not be trusted. The
// union of all decoded-tag byte ranges and all RawUnparsed ranges must equal
// the whole file payload.
type RawUnparsed struct {
	TagHex string
	Offset int
	Length int
	Bytes  []byte
	Reason string
}

// WarningCode enumerates semantic warnings surfaced rather than failed on.
// The decoder emits WarningBirthDateFallback; no code in this module
// produces the other codes.
type WarningCode int

const (
	WarningBirthDateFallback WarningCode = iota
	WarningMissingVIN
	WarningOdometerNotMonotonic
	WarningG22HeuristicApplied
	WarningUnknownTag
)

// Warning is a non-fatal semantic ambiguity encountered during decode.
type Warning struct {
	Code    WarningCode
	Message string
	TagHex  string
	Offset  int
}

// MalformedFile is returned when the file cannot be decoded at all: too
// short to carry a generation marker, or a framing break on the very first
// record. (Any two leading bytes other than a G2/G2.2 marker are read as
// G1, so the generation itself never makes a file malformed.)
type MalformedFile struct {
	Offset int
	Reason string
}

func (e *MalformedFile) Error() string {
	return fmt.Sprintf("malformed tachograph file at offset %d: %s", e.Offset, e.Reason)
}

// Severity is a compliance finding's regulatory weight, per Reg. 561/2006's
// own three-tier classification.
type Severity int

const (
	SeverityUnspecified Severity = iota
	SeverityMinor                // MI
	SeveritySerious               // SI
	SeverityVerySerious          // MSI
)

func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "MI"
	case SeveritySerious:
		return "SI"
	case SeverityVerySerious:
		return "MSI"
	default:
		return "UNSPECIFIED"
	}
}

// Infraction is one compliance-engine finding against the 561/2006 rules
// evaluated over a driver's activity timeline.
type Infraction struct {
	Date         time.Time
	Category     string
	Severity     Severity
	Description  string
	EvidenceRefs []string
}
