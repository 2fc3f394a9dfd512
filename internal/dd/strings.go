package dd

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// codePageCharmap maps a tachograph StringValue code-page byte (Data
// Dictionary section 2.158) to its golang.org/x/text character map. Code
// page 0 and any unrecognized value fall back to ISO-8859-1, which is
// ASCII-compatible and the commonest real-world default.
func codePageCharmap(codePage byte) *charmap.Charmap {
	switch codePage {
	case 1:
		return charmap.ISO8859_1
	case 2:
		return charmap.ISO8859_2
	case 3:
		return charmap.ISO8859_3
	case 5:
		return charmap.ISO8859_5
	case 7:
		return charmap.ISO8859_7
	case 9:
		return charmap.ISO8859_9
	case 13:
		return charmap.ISO8859_13
	case 15:
		return charmap.ISO8859_15
	case 16:
		return charmap.ISO8859_16
	case 80:
		return charmap.KOI8R
	case 85:
		return charmap.KOI8U
	default:
		return charmap.ISO8859_1
	}
}

// trimPadding strips the whitespace and 0x00/0xFF padding bytes tachograph
// fixed-length string fields are padded with.
func trimPadding(b []byte) []byte {
	return bytes.Trim(b, "\t\n\v\f\r \x00\xFF")
}

// UnmarshalStringValue decodes a code-paged StringValue: a 1-byte code page
// followed by fixed-length encoded string data (Data Dictionary section
// 2.158). The returned string is UTF-8 with padding trimmed.
func (opts UnmarshalOptions) UnmarshalStringValue(data []byte) (string, error) {
	if len(data) < 1 {
		return "", fmt.Errorf("insufficient data for StringValue: need at least 1 byte for code page")
	}
	codePage := data[0]
	body := data[1:]
	if codePage == 255 {
		return "", nil
	}
	ok := false
	for _, b := range body {
		if b > 0 && b < 255 {
			ok = true
			break
		}
	}
	if !ok {
		return "", nil
	}
	decoded, err := codePageCharmap(codePage).NewDecoder().String(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to decode string with code page %d: %w", codePage, err)
	}
	trimmed := string(trimPadding([]byte(decoded)))
	if !utf8.ValidString(trimmed) {
		trimmed = strings.ToValidUTF8(trimmed, string(utf8.RuneError))
	}
	return trimmed, nil
}

// UnmarshalIA5String decodes a fixed-length IA5 (7-bit ASCII) string field,
// trimming space/0x00/0xFF padding. IA5 fields (card numbers, vehicle
// registration numbers, plates) never carry a code-page prefix.
func (opts UnmarshalOptions) UnmarshalIA5String(data []byte) (string, error) {
	trimmed := trimPadding(data)
	for _, b := range trimmed {
		if b >= 0x80 {
			return "", fmt.Errorf("invalid IA5 byte 0x%02x (not 7-bit ASCII)", b)
		}
	}
	return string(trimmed), nil
}
