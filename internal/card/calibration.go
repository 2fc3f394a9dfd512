package card

import (
	"fmt"

	"github.com/haulageworks/tachograph-go/internal/model"
)

// Calibration/specific-condition record sizes. G1 workshop cards carry
// 105-byte VuCalibrationRecord entries (Data Dictionary 2.137); G2/G2.2
// widen the record to 161 bytes to add the workshop's full card number
// and an extended VIN/VRN pair. Neither layout is decoded field-by-field
// here beyond the leading timestamp, the workshop name that follows it,
// and (G2/G2.2 only) the VIN after that: the full record is kept as
// RawData for any downstream consumer that needs the remaining fields.
const (
	lenCalibrationRecordG1 = 105
	lenCalibrationRecordG2 = 161
)

// unmarshalCalibrationData decodes EF_Specific_Conditions / the
// card-resident calibration log into a flat list of CalibrationRecord.
func (opts UnmarshalOptions) unmarshalCalibrationData(data []byte, gen model.Generation) ([]model.CalibrationRecord, error) {
	recordSize := lenCalibrationRecordG1
	if gen != model.GenerationG1 {
		recordSize = lenCalibrationRecordG2
	}
	if len(data)%recordSize != 0 {
		return nil, fmt.Errorf("invalid calibration record data: got %d bytes, not a multiple of %d", len(data), recordSize)
	}

	var records []model.CalibrationRecord
	for offset := 0; offset+recordSize <= len(data); offset += recordSize {
		rec := data[offset : offset+recordSize]
		ts, err := opts.UnmarshalTimeReal(rec[0:4])
		if err != nil {
			return nil, fmt.Errorf("calibration timestamp: %w", err)
		}
		if ts.IsZero() {
			continue
		}
		workshopName, err := opts.UnmarshalStringValue(rec[4:40])
		if err != nil {
			return nil, fmt.Errorf("calibration workshop name: %w", err)
		}
		var vin string
		if gen != model.GenerationG1 && len(rec) >= 57 {
			vin, err = opts.UnmarshalIA5String(rec[40:57])
			if err != nil {
				return nil, fmt.Errorf("calibration VIN: %w", err)
			}
		}
		records = append(records, model.CalibrationRecord{
			Timestamp:    ts,
			RecordSize:   recordSize,
			WorkshopName: workshopName,
			VIN:          vin,
			RawData:      append([]byte(nil), rec...),
		})
	}
	return records, nil
}
