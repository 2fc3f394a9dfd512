package dd

import (
	"encoding/binary"
	"fmt"
)

// geoScale is the conversion factor from the wire's signed 1e-7-degree
// integer representation to decimal degrees.
const geoScale = 1e-7

// UnmarshalGeoCoordinate decodes a signed 32-bit big-endian integer scaled
// by 1e-7 into decimal degrees (WGS84), as used for GNSS latitude and
// longitude fields.
func (opts UnmarshalOptions) UnmarshalGeoCoordinate(data []byte) (float64, error) {
	const n = 4
	if len(data) != n {
		return 0, fmt.Errorf("invalid data length for GeoCoordinate: got %d, want %d", len(data), n)
	}
	raw := int32(binary.BigEndian.Uint32(data))
	return float64(raw) * geoScale, nil
}
