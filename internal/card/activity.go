package card

import (
	"encoding/binary"
	"fmt"

	"github.com/haulageworks/tachograph-go/internal/model"
)

// unmarshalDriverActivityData decodes EF_Driver_Activity_Data
// (CardDriverActivity, Data Dictionary 2.16): a cyclic buffer of
// DailyActivityRecord entries.
//
//	CardDriverActivity ::= SEQUENCE {
//	    activityPointerOldestDayRecord      INTEGER(0..CardActivityLengthRange-1), -- 2 bytes
//	    activityPointerNewestRecord         INTEGER(0..CardActivityLengthRange-1), -- 2 bytes
//	    activityDailyRecords                OCTET STRING (SIZE(CardActivityLengthRange-4))
//	}
//
// Both pointers are byte offsets into activityDailyRecords (not record
// indices), because DailyActivityRecord is variable-length: its first two
// fields, previousRecordLength and currentRecordLength, let a reader walk
// the buffer forward from any record without needing a fixed stride.
//
// The buffer is cyclic: once full, the card overwrites the oldest bytes
// with new records, so activityPointerNewestRecord can be a lower offset
// than activityPointerOldestDayRecord. Reading in write order therefore
// means starting at the oldest pointer and walking forward with wraparound
// until the record beginning at the newest pointer has been read, rather
// than reading activityDailyRecords front-to-back.
func (opts UnmarshalOptions) unmarshalDriverActivityData(data []byte) ([]model.DailyActivityRecord, error) {
	const lenPointers = 4
	if len(data) < lenPointers {
		return nil, fmt.Errorf("invalid data length for DriverActivityData: got %d, want at least %d", len(data), lenPointers)
	}
	oldest := int(binary.BigEndian.Uint16(data[0:2]))
	newest := int(binary.BigEndian.Uint16(data[2:4]))
	buf := data[lenPointers:]
	n := len(buf)
	if n == 0 {
		return nil, nil
	}
	if oldest >= n || newest >= n {
		return nil, fmt.Errorf("activity buffer pointers out of range: oldest=%d newest=%d buffer=%d", oldest, newest, n)
	}

	var records []model.DailyActivityRecord
	pos := oldest
	visited := 0
	for {
		if visited >= n {
			// Defensive: never loop more times than there are bytes in
			// the buffer, in case a malformed record length would
			// otherwise spin forever.
			return nil, fmt.Errorf("driver activity buffer did not terminate at the newest-record pointer after a full cycle")
		}
		rec, recLen, err := opts.unmarshalDailyActivityRecordAt(buf, pos)
		if err != nil {
			return nil, fmt.Errorf("daily activity record at buffer offset %d: %w", pos, err)
		}
		records = append(records, rec)
		visited += recLen
		if pos == newest {
			break
		}
		pos = (pos + recLen) % n
	}
	return records, nil
}

// unmarshalDailyActivityRecordAt decodes one DailyActivityRecord starting
// at byte offset pos within the cyclic buf, wrapping around the end of
// buf as needed, and returns the record plus its current (on-disk) length
// in bytes so the caller can advance its cursor.
//
//	CardDriverActivity.ActivityDailyRecord ::= SEQUENCE {
//	    activityPreviousRecordLength  INTEGER,          -- 2 bytes
//	    activityRecordLength          INTEGER,          -- 2 bytes
//	    activityRecordDate            TimeReal,         -- 4 bytes
//	    activityDailyPresenceCounter  BCDString,        -- 2 bytes
//	    activityDayDistance           Distance,         -- 2 bytes
//	    activityChangeInfo            ActivityChangeInfo (SIZE(1..1440))
//	}
func (opts UnmarshalOptions) unmarshalDailyActivityRecordAt(buf []byte, pos int) (model.DailyActivityRecord, int, error) {
	n := len(buf)
	header := wrapRead(buf, pos, 10)
	if len(header) != 10 {
		return model.DailyActivityRecord{}, 0, fmt.Errorf("insufficient data for daily activity record header")
	}

	previousLength := binary.BigEndian.Uint16(header[0:2])
	currentLength := binary.BigEndian.Uint16(header[2:4])
	const lenFixedPrefix = 12 // previousLength+currentLength+date+presenceCounter+distance
	if int(currentLength) < lenFixedPrefix || int(currentLength) > n {
		return model.DailyActivityRecord{}, 0, fmt.Errorf("invalid daily activity record length %d for a %d-byte buffer", currentLength, n)
	}

	dayTimestamp, err := opts.UnmarshalTimeReal(header[4:8])
	if err != nil {
		return model.DailyActivityRecord{}, 0, fmt.Errorf("activity record date: %w", err)
	}
	presenceCounter, err := opts.UnmarshalBCD(header[8:10])
	if err != nil {
		return model.DailyActivityRecord{}, 0, fmt.Errorf("daily presence counter: %w", err)
	}
	distance, err := opts.UnmarshalUint16(wrapRead(buf, (pos+10)%n, 2))
	if err != nil {
		return model.DailyActivityRecord{}, 0, fmt.Errorf("day distance: %w", err)
	}

	changesBytes := int(currentLength) - lenFixedPrefix
	if changesBytes%2 != 0 {
		return model.DailyActivityRecord{}, 0, fmt.Errorf("activity change block has odd length %d", changesBytes)
	}
	changesData := wrapRead(buf, (pos+lenFixedPrefix)%n, changesBytes)
	if len(changesData) != changesBytes {
		return model.DailyActivityRecord{}, 0, fmt.Errorf("insufficient data for activity change block")
	}
	changes := make([]model.ActivityChangeInfo, 0, changesBytes/2)
	for i := 0; i+2 <= len(changesData); i += 2 {
		changes = append(changes, unmarshalActivityChangeInfo(binary.BigEndian.Uint16(changesData[i:i+2])))
	}

	return model.DailyActivityRecord{
		PreviousLength:      previousLength,
		CurrentLength:       currentLength,
		DayTimestamp:        dayTimestamp,
		DailyPresenceCounter: uint16(presenceCounter),
		DayDistanceKm:       distance,
		Changes:             changes,
	}, int(currentLength), nil
}

// wrapRead copies length bytes from buf starting at pos, wrapping around
// to the start of buf when the read would run past its end. It returns a
// short slice if length exceeds len(buf).
func wrapRead(buf []byte, pos, length int) []byte {
	n := len(buf)
	if n == 0 || length <= 0 {
		return nil
	}
	if length > n {
		length = n
	}
	out := make([]byte, 0, length)
	for i := 0; i < length; i++ {
		out = append(out, buf[(pos+i)%n])
	}
	return out
}

// unmarshalActivityChangeInfo decodes the 2-byte ActivityChangeInfo
// bitfield (Data Dictionary 2.1):
//
//	bit 15:    slot (0 = DRIVER, 1 = CO-DRIVER)
//	bit 14:    driving status CREW (0 = SINGLE, 1 = CREW)
//	bit 13:    card status (0 = INSERTED, 1 = NOT INSERTED / withdrawn)
//	bits 12-11: activity (00 = BREAK/REST, 01 = AVAILABILITY, 10 = WORK, 11 = DRIVING)
//	bits 10-0: time of the change, in minutes since midnight (0-1439)
func unmarshalActivityChangeInfo(raw uint16) model.ActivityChangeInfo {
	slot := model.SlotDriver
	if raw&0x8000 != 0 {
		slot = model.SlotCoDriver
	}
	crew := raw&0x4000 != 0
	withdrawn := raw&0x2000 != 0
	kind := model.ActivityKind((raw >> 11) & 0x3)
	minute := int(raw & 0x07FF)
	return model.ActivityChangeInfo{
		Slot:          slot,
		Crew:          crew,
		CardWithdrawn: withdrawn,
		Kind:          kind,
		MinuteOfDay:   minute,
	}
}
