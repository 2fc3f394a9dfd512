package dd

import (
	"encoding/binary"
	"fmt"
)

// UnmarshalUint8 reads a 1-byte unsigned integer.
func (opts UnmarshalOptions) UnmarshalUint8(data []byte) (uint8, error) {
	if len(data) != 1 {
		return 0, fmt.Errorf("invalid data length for UInt8: got %d, want 1", len(data))
	}
	return data[0], nil
}

// UnmarshalUint16 reads a 2-byte big-endian unsigned integer.
func (opts UnmarshalOptions) UnmarshalUint16(data []byte) (uint16, error) {
	const n = 2
	if len(data) != n {
		return 0, fmt.Errorf("invalid data length for UInt16: got %d, want %d", len(data), n)
	}
	return binary.BigEndian.Uint16(data), nil
}

// UnmarshalUint24 reads a 3-byte big-endian unsigned integer into a uint32.
//
// The tachograph Data Dictionary uses 24-bit fields for odometer readings
// and similar bounded counters; there is no native Go integer of that
// width, so the result is widened into a uint32 with the top byte zero.
func (opts UnmarshalOptions) UnmarshalUint24(data []byte) (uint32, error) {
	const n = 3
	if len(data) != n {
		return 0, fmt.Errorf("invalid data length for UInt24: got %d, want %d", len(data), n)
	}
	return uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2]), nil
}

// UnmarshalUint32 reads a 4-byte big-endian unsigned integer.
func (opts UnmarshalOptions) UnmarshalUint32(data []byte) (uint32, error) {
	const n = 4
	if len(data) != n {
		return 0, fmt.Errorf("invalid data length for UInt32: got %d, want %d", len(data), n)
	}
	return binary.BigEndian.Uint32(data), nil
}

// UnmarshalInt24 reads a 3-byte big-endian two's-complement signed integer,
// sign-extended into an int32. The tachograph Data Dictionary uses this
// layout for signed GNSS latitude/longitude fields when they are
// abbreviated to 24 bits; most coordinates in this protocol are full
// 32-bit values (see UnmarshalGeoCoordinate), but some calibration fields
// reuse the 24-bit signed form.
func (opts UnmarshalOptions) UnmarshalInt24(data []byte) (int32, error) {
	const n = 3
	if len(data) != n {
		return 0, fmt.Errorf("invalid data length for Int24: got %d, want %d", len(data), n)
	}
	val := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
	if val&0x800000 != 0 {
		val |= 0xFF000000
	}
	return int32(val), nil
}
