package dd

import "fmt"

// UnmarshalVehicleRegistration decodes the 15-byte VehicleRegistrationIdentification
// value shared by event, fault, control-activity, and vehicle-used records:
// 1 byte nation code followed by a 14-byte IA5 registration number.
func (opts UnmarshalOptions) UnmarshalVehicleRegistration(data []byte) (nation, plate string, err error) {
	const n = 15
	if len(data) != n {
		return "", "", fmt.Errorf("invalid data length for VehicleRegistrationIdentification: got %d, want %d", len(data), n)
	}
	nation = opts.UnmarshalNationCode(data[0])
	plate, err = opts.UnmarshalIA5String(data[1:15])
	if err != nil {
		return "", "", fmt.Errorf("failed to decode registration plate: %w", err)
	}
	return nation, plate, nil
}
