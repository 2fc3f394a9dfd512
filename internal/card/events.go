package card

import (
	"encoding/binary"
	"fmt"

	"github.com/haulageworks/tachograph-go/internal/model"
)

// cardEventRecordSize is the fixed size of a single CardEventRecord /
// CardFaultRecord (Data Dictionary 2.19-2.22): 1-byte type, 4-byte begin
// TimeReal, 4-byte end TimeReal, 15-byte vehicle registration.
const cardEventRecordSize = 24

// eventGroupFor maps an EventFaultType byte to one of the six event groups
// carried on model.EventRecord: 0x01-0x03 time overlap, 0x04 last card
// session, 0x05-0x07 power supply interruption, 0x08-0x0A card conflict,
// 0x0B-0x0C time difference, 0x0D driving without card. Any other value
// maps to EventGroupUnspecified; the raw code is still kept in TypeCode.
func eventGroupFor(code byte) model.EventGroup {
	switch {
	case code >= 0x01 && code <= 0x03:
		return model.EventGroupTimeOverlap
	case code == 0x04:
		return model.EventGroupLastCardSession
	case code >= 0x05 && code <= 0x07:
		return model.EventGroupPowerSupplyInterruption
	case code >= 0x08 && code <= 0x0A:
		return model.EventGroupCardConflict
	case code >= 0x0B && code <= 0x0C:
		return model.EventGroupTimeDifference
	case code == 0x0D:
		return model.EventGroupDrivingWithoutCard
	default:
		return model.EventGroupUnspecified
	}
}

func faultGroupFor(code byte) model.FaultGroup {
	switch {
	case code >= 0x01 && code <= 0x03:
		return model.FaultGroupCardFault
	case code >= 0x04 && code <= 0x07:
		return model.FaultGroupVUFault
	case code >= 0x08:
		return model.FaultGroupSensorFault
	default:
		return model.FaultGroupUnspecified
	}
}

// unmarshalEventsData decodes EF_Events_Data: a flat sequence of 24-byte
// CardEventRecord entries. A record whose begin time is zero is a never-
// written slot in the fixed-size array rather than an actual event, and
// is skipped.
func (opts UnmarshalOptions) unmarshalEventsData(data []byte) ([]model.EventRecord, error) {
	if len(data)%cardEventRecordSize != 0 {
		return nil, fmt.Errorf("invalid data length for EventsData: got %d bytes, not a multiple of %d", len(data), cardEventRecordSize)
	}
	var records []model.EventRecord
	for offset := 0; offset+cardEventRecordSize <= len(data); offset += cardEventRecordSize {
		rec := data[offset : offset+cardEventRecordSize]
		beginRaw := binary.BigEndian.Uint32(rec[1:5])
		if beginRaw == 0 {
			continue
		}
		code := rec[0]
		begin, err := opts.UnmarshalTimeReal(rec[1:5])
		if err != nil {
			return nil, fmt.Errorf("event begin time: %w", err)
		}
		end, err := opts.UnmarshalTimeReal(rec[5:9])
		if err != nil {
			return nil, fmt.Errorf("event end time: %w", err)
		}
		nation, plate, err := opts.UnmarshalVehicleRegistration(rec[9:24])
		if err != nil {
			return nil, fmt.Errorf("event vehicle registration: %w", err)
		}
		records = append(records, model.EventRecord{
			Group:    eventGroupFor(code),
			TypeCode: code,
			Begin:    begin,
			End:      end,
			Vehicle:  model.VehicleRef{Nation: nation, Plate: plate},
		})
	}
	return records, nil
}

// unmarshalFaultsData decodes EF_Faults_Data. It shares CardEventRecord's
// 24-byte layout (Data Dictionary 2.21-2.22 CardFaultRecord) but groups
// its type code as a fault rather than an event.
func (opts UnmarshalOptions) unmarshalFaultsData(data []byte) ([]model.FaultRecord, error) {
	if len(data)%cardEventRecordSize != 0 {
		return nil, fmt.Errorf("invalid data length for FaultsData: got %d bytes, not a multiple of %d", len(data), cardEventRecordSize)
	}
	var records []model.FaultRecord
	for offset := 0; offset+cardEventRecordSize <= len(data); offset += cardEventRecordSize {
		rec := data[offset : offset+cardEventRecordSize]
		beginRaw := binary.BigEndian.Uint32(rec[1:5])
		if beginRaw == 0 {
			continue
		}
		code := rec[0]
		begin, err := opts.UnmarshalTimeReal(rec[1:5])
		if err != nil {
			return nil, fmt.Errorf("fault begin time: %w", err)
		}
		end, err := opts.UnmarshalTimeReal(rec[5:9])
		if err != nil {
			return nil, fmt.Errorf("fault end time: %w", err)
		}
		nation, plate, err := opts.UnmarshalVehicleRegistration(rec[9:24])
		if err != nil {
			return nil, fmt.Errorf("fault vehicle registration: %w", err)
		}
		records = append(records, model.FaultRecord{
			Group:    faultGroupFor(code),
			TypeCode: code,
			Begin:    begin,
			End:      end,
			Vehicle:  model.VehicleRef{Nation: nation, Plate: plate},
		})
	}
	return records, nil
}
