package dd

import (
	"encoding/binary"
	"fmt"
	"time"
)

// UnmarshalTimeReal unmarshals a TimeReal timestamp: a 4-byte big-endian
// count of seconds since the Unix epoch (1970-01-01T00:00:00Z). A wire
// value of zero is the protocol's "not set" sentinel and is returned as
// the zero time.Time.
func (opts UnmarshalOptions) UnmarshalTimeReal(data []byte) (time.Time, error) {
	const n = 4
	if len(data) != n {
		return time.Time{}, fmt.Errorf("invalid data length for TimeReal: got %d, want %d", len(data), n)
	}
	seconds := binary.BigEndian.Uint32(data)
	if seconds == 0 {
		return time.Time{}, nil
	}
	return time.Unix(int64(seconds), 0).UTC(), nil
}

// UnmarshalDatef decodes a 4-byte packed-BCD date in YYYYMMDD form.
//
// Binary layout: 2 BCD digits for century+decade of year pairs packed
// across 4 bytes (byte0 byte1 = year, byte2 = month, byte3 = day), each
// byte holding two decimal digits.
func (opts UnmarshalOptions) UnmarshalDatef(data []byte) (time.Time, error) {
	const n = 4
	if len(data) != n {
		return time.Time{}, fmt.Errorf("invalid data length for Datef: got %d, want %d", len(data), n)
	}
	year, err := opts.UnmarshalBCD(data[0:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid Datef year: %w", err)
	}
	month, err := opts.UnmarshalBCD(data[2:3])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid Datef month: %w", err)
	}
	day, err := opts.UnmarshalBCD(data[3:4])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid Datef day: %w", err)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid Datef month: %d", month)
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid Datef day: %d", day)
	}
	return time.Date(int(year), time.Month(month), int(day), 0, 0, 0, 0, time.UTC), nil
}

// UnmarshalBirthDate decodes a 4-byte CardHolderBirthDate field, which is
// nominally a Datef but which some card producers emit as a raw TimeReal
// instead. It attempts the Datef interpretation first (validating month
// and day ranges) and falls back to TimeReal when that fails, returning
// usedTimeReal=true in the fallback case so callers can attach a semantic
// warning rather than silently accept the ambiguity.
func (opts UnmarshalOptions) UnmarshalBirthDate(data []byte) (birthDate time.Time, usedTimeReal bool, err error) {
	if t, dErr := opts.UnmarshalDatef(data); dErr == nil {
		return t, false, nil
	}
	t, tErr := opts.UnmarshalTimeReal(data)
	if tErr != nil {
		return time.Time{}, false, fmt.Errorf("could not decode birth date as Datef or TimeReal: %w", tErr)
	}
	return t, true, nil
}
