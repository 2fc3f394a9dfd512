package card

import (
	"encoding/binary"
	"fmt"

	"github.com/haulageworks/tachograph-go/internal/model"
)

// unmarshalPlaces decodes EF_Places (CardPlaceDailyWorkPeriod, Data
// Dictionary 2.101): a 1-byte newest-record pointer followed by a
// fixed-size array of 10-byte PlaceRecord entries.
//
//	PlaceRecord ::= SEQUENCE {
//	    entryTime                   TimeReal,              -- 4 bytes
//	    entryTypeDailyWorkPeriod    EntryTypeDailyWorkPeriod, -- 1 byte
//	    dailyWorkPeriodCountry      NationNumeric,          -- 1 byte
//	    vehicleOdometerValue        OdometerShort           -- 3 bytes (+ 1 byte reserved/entry region on some generations)
//	}
func (opts UnmarshalOptions) unmarshalPlaces(data []byte) ([]model.PlaceRecord, error) {
	const (
		lenPointer   = 1
		lenPlaceRecord = 10
	)
	if len(data) < lenPointer {
		return nil, fmt.Errorf("invalid data length for Places: got %d, want at least %d", len(data), lenPointer)
	}
	body := data[lenPointer:]
	if len(body)%lenPlaceRecord != 0 {
		return nil, fmt.Errorf("invalid Places record data: got %d bytes, not a multiple of %d", len(body), lenPlaceRecord)
	}

	var records []model.PlaceRecord
	for offset := 0; offset+lenPlaceRecord <= len(body); offset += lenPlaceRecord {
		rec := body[offset : offset+lenPlaceRecord]
		entryRaw := binary.BigEndian.Uint32(rec[0:4])
		if entryRaw == 0 {
			continue
		}
		entryTime, err := opts.UnmarshalTimeReal(rec[0:4])
		if err != nil {
			return nil, fmt.Errorf("place entry time: %w", err)
		}
		entryType := entryTypeName(rec[4])
		country := opts.UnmarshalNationCode(rec[5])
		odometer, err := opts.UnmarshalUint24(rec[6:9])
		if err != nil {
			return nil, fmt.Errorf("place vehicle odometer: %w", err)
		}
		records = append(records, model.PlaceRecord{
			EntryTime:               entryTime,
			EntryTypeDaily:          entryType,
			DailyWorkPeriodCountry:  country,
			VehicleOdometerKm:       odometer,
		})
	}
	return records, nil
}

// entryTypeName decodes EntryTypeDailyWorkPeriod (Data Dictionary 2.65).
func entryTypeName(b byte) string {
	switch b {
	case 0:
		return "BEGIN_RELATED_TIME_CARD_INSERTION"
	case 1:
		return "END_RELATED_TIME_CARD_WITHDRAWAL"
	case 2:
		return "BEGIN_RELATED_TIME_ENTERED_MANUALLY"
	case 3:
		return "END_RELATED_TIME_ENTERED_MANUALLY"
	case 4:
		return "BEGIN_RELATED_TIME_CONDITION_CHANGE"
	case 5:
		return "END_RELATED_TIME_CONDITION_CHANGE"
	default:
		return fmt.Sprintf("0x%02X", b)
	}
}

// unmarshalGNSSPlaces decodes EF_GNSS_Places (G2/G2.2 only): a 2-byte
// newest-record pointer followed by 18-byte GNSSAccumulatedDrivingRecord
// entries (4-byte TimeReal, 11-byte GNSS place record, 3-byte odometer).
func (opts UnmarshalOptions) unmarshalGNSSPlaces(data []byte) ([]model.GNSSPoint, error) {
	const (
		lenPointer = 2
		lenRecord  = 18
	)
	if len(data) < lenPointer {
		return nil, fmt.Errorf("invalid data length for GNSSPlaces: got %d, want at least %d", len(data), lenPointer)
	}
	body := data[lenPointer:]
	if len(body)%lenRecord != 0 {
		return nil, fmt.Errorf("invalid GNSSPlaces record data: got %d bytes, not a multiple of %d", len(body), lenRecord)
	}

	var points []model.GNSSPoint
	for offset := 0; offset+lenRecord <= len(body); offset += lenRecord {
		rec := body[offset : offset+lenRecord]
		tsRaw := binary.BigEndian.Uint32(rec[0:4])
		if tsRaw == 0 {
			continue
		}
		ts, err := opts.UnmarshalTimeReal(rec[0:4])
		if err != nil {
			return nil, fmt.Errorf("gnss timestamp: %w", err)
		}
		// GNSSPlaceRecord (11 bytes): 1-byte timestamp-validity flag, then
		// latitude (4 bytes signed) and longitude (4 bytes signed); the
		// trailing 2 bytes are accuracy/altitude fields not surfaced on
		// model.GNSSPoint.
		lat, err := opts.UnmarshalGeoCoordinate(rec[5:9])
		if err != nil {
			return nil, fmt.Errorf("gnss latitude: %w", err)
		}
		lon, err := opts.UnmarshalGeoCoordinate(rec[9:13])
		if err != nil {
			return nil, fmt.Errorf("gnss longitude: %w", err)
		}
		points = append(points, model.GNSSPoint{
			Timestamp: ts,
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return points, nil
}
