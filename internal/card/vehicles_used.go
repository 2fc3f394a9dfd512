package card

import (
	"fmt"

	"github.com/haulageworks/tachograph-go/internal/model"
)

// unmarshalVehiclesUsed decodes EF_Vehicles_Used: a 2-byte newest-record
// pointer followed by a fixed-size array of CardVehicleRecord entries (31
// bytes on G1, Data Dictionary 2.25; 48 bytes on G2/G2.2, which append a
// 17-byte VIN to the same fields). The newest-record pointer is an index,
// not a byte offset, and the array itself is not cyclic (unlike
// CardDriverActivity): entries are simply appended in chronological order
// up to the EF's fixed capacity, so no reconstruction is needed beyond
// reading them in array order.
func (opts UnmarshalOptions) unmarshalVehiclesUsed(data []byte, gen model.Generation) ([]model.VehicleUsedRecord, error) {
	const lenPointer = 2
	recordSize := 31
	if gen != model.GenerationG1 {
		recordSize = 48
	}
	if len(data) < lenPointer {
		return nil, fmt.Errorf("invalid data length for VehiclesUsed: got %d, want at least %d", len(data), lenPointer)
	}
	body := data[lenPointer:]
	if len(body)%recordSize != 0 {
		return nil, fmt.Errorf("invalid VehiclesUsed record data: got %d bytes, not a multiple of %d", len(body), recordSize)
	}

	var records []model.VehicleUsedRecord
	for offset := 0; offset+recordSize <= len(body); offset += recordSize {
		rec := body[offset : offset+recordSize]
		odometerBegin, err := opts.UnmarshalUint24(rec[0:3])
		if err != nil {
			return nil, fmt.Errorf("vehicle odometer begin: %w", err)
		}
		odometerEnd, err := opts.UnmarshalUint24(rec[3:6])
		if err != nil {
			return nil, fmt.Errorf("vehicle odometer end: %w", err)
		}
		if odometerBegin == 0 && odometerEnd == 0 {
			// Never-written slot in the fixed-size array.
			continue
		}
		firstUse, err := opts.UnmarshalTimeReal(rec[6:10])
		if err != nil {
			return nil, fmt.Errorf("vehicle first use: %w", err)
		}
		lastUse, err := opts.UnmarshalTimeReal(rec[10:14])
		if err != nil {
			return nil, fmt.Errorf("vehicle last use: %w", err)
		}
		nation, plate, err := opts.UnmarshalVehicleRegistration(rec[14:29])
		if err != nil {
			return nil, fmt.Errorf("vehicle registration: %w", err)
		}
		var vuCounter string
		if rec[29] != 0xFF || rec[30] != 0xFF {
			n, err := opts.UnmarshalBCD(rec[29:31])
			if err != nil {
				return nil, fmt.Errorf("vehicle data block counter: %w", err)
			}
			vuCounter = fmt.Sprintf("%02d", n)
		}

		var vin string
		if gen != model.GenerationG1 {
			vin, err = opts.UnmarshalIA5String(rec[31:48])
			if err != nil {
				return nil, fmt.Errorf("vehicle VIN: %w", err)
			}
		}

		records = append(records, model.VehicleUsedRecord{
			OdometerBeginKm:    odometerBegin,
			OdometerEndKm:      odometerEnd,
			FirstUse:           firstUse,
			LastUse:            lastUse,
			Nation:             nation,
			Plate:              plate,
			VuDataBlockCounter: vuCounter,
			VIN:                vin,
		})
	}
	return records, nil
}
