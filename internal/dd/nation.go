package dd

import "fmt"

// nationNames maps the Data Dictionary NationNumeric code (section 2.89) to
// its ISO-3166 alpha-2-ish short name as used on tachograph equipment. Only
// the EU/EEA member states and a handful of common third countries are
// named; anything else decodes to its numeric form so that an unrecognized
// nation never blocks the rest of the record from decoding.
var nationNames = map[byte]string{
	0x00: "",
	0x01: "A", 0x02: "AL", 0x03: "AND", 0x04: "ARM", 0x05: "AZ",
	0x0B: "B", 0x12: "BG", 0x17: "CH", 0x18: "CY", 0x19: "CZ",
	0x1A: "D", 0x1C: "DK", 0x1D: "E", 0x1E: "EST", 0x1F: "F",
	0x23: "FIN", 0x25: "GB", 0x26: "GE", 0x2C: "GR", 0x2D: "H",
	0x32: "HR", 0x34: "I", 0x3C: "IRL", 0x3F: "IS", 0x44: "L",
	0x45: "LT", 0x46: "LV", 0x4B: "MD", 0x4D: "MK", 0x4E: "MNE",
	0x4F: "MT", 0x53: "N", 0x55: "NL", 0x56: "NMK",
	0x5A: "P", 0x5E: "PL", 0x5F: "RO", 0x63: "RSM",
	0x67: "RUS", 0x69: "S", 0x6A: "SK", 0x6B: "SLO", 0x6C: "SRB",
	0x71: "TR", 0x73: "UA", 0xFD: "EC", 0xFE: "EUR", 0xFF: "",
}

// UnmarshalNationCode decodes a 1-byte NationNumeric value into its short
// name. Unrecognized codes are rendered as "0xNN" rather than failing,
// since an unmapped nation code does not make the rest of the record
// unparseable.
func (opts UnmarshalOptions) UnmarshalNationCode(b byte) string {
	if name, ok := nationNames[b]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", b)
}
