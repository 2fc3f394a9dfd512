package framing

import (
	"encoding/binary"

	"github.com/haulageworks/tachograph-go/internal/model"
)

// header is a decoded tag+length pair plus the number of bytes its framing
// occupied, so the caller can advance the cursor past both the header and
// the payload.
type header struct {
	tag       uint16
	headerLen int
	length    int
}

// decodeSTAP decodes the fixed 5-byte G1 framing: 2-byte tag, 1-byte
// record-type (unused beyond framing), 2-byte big-endian length.
func decodeSTAP(data []byte) (header, bool) {
	const n = 5
	if len(data) < n {
		return header{}, false
	}
	tag := binary.BigEndian.Uint16(data[0:2])
	length := int(binary.BigEndian.Uint16(data[3:5]))
	return header{tag: tag, headerLen: n, length: length}, true
}

// decodeBERTLV decodes a BER-TLV tag+length: 2-byte tag, then a BER
// short-form (1 byte, high bit clear) or long-form (1 length-of-length
// byte with the high bit set, followed by that many big-endian length
// bytes) length.
func decodeBERTLV(data []byte) (header, bool) {
	if len(data) < 3 {
		return header{}, false
	}
	tag := binary.BigEndian.Uint16(data[0:2])
	lenByte := data[2]
	if lenByte&0x80 == 0 {
		return header{tag: tag, headerLen: 3, length: int(lenByte)}, true
	}
	lengthOfLength := int(lenByte & 0x7F)
	if lengthOfLength == 0 || lengthOfLength > 4 {
		return header{}, false
	}
	if len(data) < 3+lengthOfLength {
		return header{}, false
	}
	length := 0
	for _, b := range data[3 : 3+lengthOfLength] {
		length = length<<8 | int(b)
	}
	return header{tag: tag, headerLen: 3 + lengthOfLength, length: length}, true
}

// decodeSimple4Byte decodes a bare 2-byte tag + 2-byte big-endian length,
// with no record-type byte. This is one of the fallback framings tried
// when the generation's primary framing fails to bracket a record.
func decodeSimple4Byte(data []byte) (header, bool) {
	const n = 4
	if len(data) < n {
		return header{}, false
	}
	tag := binary.BigEndian.Uint16(data[0:2])
	length := int(binary.BigEndian.Uint16(data[2:4]))
	return header{tag: tag, headerLen: n, length: length}, true
}

// decodeBERTLVLongForm restricts decodeBERTLV to only succeed when a
// multi-byte (long-form) length was used, for the fallback-heuristic
// ordering which tries the multi-byte interpretation before the 2+2
// fallback and the short-form BER-TLV interpretation.
func decodeBERTLVLongForm(data []byte) (header, bool) {
	if len(data) < 3 || data[2]&0x80 == 0 {
		return header{}, false
	}
	return decodeBERTLV(data)
}

// decodeBERTLVShortForm restricts decodeBERTLV to only succeed when a
// single-byte (short-form) length was used.
func decodeBERTLVShortForm(data []byte) (header, bool) {
	if len(data) < 3 || data[2]&0x80 != 0 {
		return header{}, false
	}
	return decodeBERTLV(data)
}

// decodeHeader picks the primary framing for a generation: fixed STAP
// framing for G1, BER-TLV for G2 and G2.2.
func decodeHeader(gen model.Generation, data []byte) (header, bool) {
	if gen == model.GenerationG1 {
		return decodeSTAP(data)
	}
	return decodeBERTLV(data)
}

// fallbackCandidates lists the framings tried, in order, when the primary
// framing for the generation fails to bracket the next record at a
// container boundary. The first candidate whose decoded length fits
// within the remaining bytes wins.
var fallbackCandidates = []func([]byte) (header, bool){
	decodeBERTLVLongForm,
	decodeSimple4Byte,
	decodeBERTLVShortForm,
}

// decodeHeaderWithFallback tries the generation's primary framing, then,
// unless strict is set, each fallback candidate in order, returning the
// first header whose length fits in the remaining bytes.
func decodeHeaderWithFallback(gen model.Generation, data []byte, strict bool) (header, bool) {
	if h, ok := decodeHeader(gen, data); ok && h.headerLen+h.length <= len(data) {
		return h, true
	}
	if strict {
		return header{}, false
	}
	for _, candidate := range fallbackCandidates {
		if h, ok := candidate(data); ok && h.headerLen+h.length <= len(data) {
			return h, true
		}
	}
	return header{}, false
}
