package tachograph

import (
	"fmt"

	"github.com/haulageworks/tachograph-go/internal/hexdump"
)

// DumpRawUnparsed renders one RawUnparsed span as a hexdump-style listing,
// prefixed with its tag and the reason decoding stopped there. It is meant
// for inspecting the bytes a decode run could not interpret, without
// reaching for an external hexdump tool.
func DumpRawUnparsed(r RawUnparsed) (string, error) {
	body, err := hexdump.Marshal(r.Bytes)
	if err != nil {
		return "", fmt.Errorf("dumping raw span %s: %w", r.TagHex, err)
	}
	return fmt.Sprintf("%s at offset %d (%s):\n%s", r.TagHex, r.Offset, r.Reason, body), nil
}

// LoadRawUnparsedFixture reconstructs the byte slice for a RawUnparsed span
// from a previously captured hexdump listing, the inverse of
// DumpRawUnparsed's body. Useful for pinning a malformed-input regression to
// a checked-in fixture file instead of an inline byte literal.
func LoadRawUnparsedFixture(dump []byte) ([]byte, error) {
	data, err := hexdump.Unmarshal(dump)
	if err != nil {
		return nil, fmt.Errorf("loading raw span fixture: %w", err)
	}
	return data, nil
}
