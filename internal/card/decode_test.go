package card

import (
	"encoding/binary"
	"testing"

	"github.com/haulageworks/tachograph-go/internal/framing"
	"github.com/haulageworks/tachograph-go/internal/model"
)

// stapFrame builds one G1 STAP-framed record: 2-byte tag, 1-byte
// (unused) record type, 2-byte big-endian length, payload.
func stapFrame(tag uint16, payload []byte) []byte {
	frame := make([]byte, 5+len(payload))
	binary.BigEndian.PutUint16(frame[0:2], tag)
	frame[2] = 0x00
	binary.BigEndian.PutUint16(frame[3:5], uint16(len(payload)))
	copy(frame[5:], payload)
	return frame
}

// berTLVShortFrame builds one BER-TLV short-form-length-framed record: 2-byte
// tag, 1-byte length (high bit clear), payload. Requires len(payload) < 128.
func berTLVShortFrame(tag uint16, payload []byte) []byte {
	frame := make([]byte, 3+len(payload))
	binary.BigEndian.PutUint16(frame[0:2], tag)
	frame[2] = byte(len(payload))
	copy(frame[3:], payload)
	return frame
}

func TestDecode_G1_ApplicationIdentificationWithSignature(t *testing.T) {
	appPayload := []byte{0x01, 0x00, 0x01, 0x0A, 0x0A, 0x00, 0x64, 0x00, 0x05, 0x03}
	sigPayload := []byte("SIGND")

	file := append(stapFrame(tagApplicationIdentification, appPayload),
		stapFrame(tagApplicationIdentification|signatureBit, sigPayload)...)

	opts := UnmarshalOptions{}
	result, err := opts.Decode(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Generation != model.GenerationG1 {
		t.Fatalf("got generation %v, want G1", result.Generation)
	}
	if result.CardApplication.NoOfCardPlaceRecords != 0x03 {
		t.Errorf("got NoOfCardPlaceRecords %d, want 3", result.CardApplication.NoOfCardPlaceRecords)
	}
	if len(result.SignatureBlocks) != 1 {
		t.Fatalf("got %d signature blocks, want 1", len(result.SignatureBlocks))
	}
	if result.SignatureBlocks[0].Orphan {
		t.Errorf("signature block incorrectly marked orphan")
	}
	if len(result.RawUnparsed) != 0 {
		t.Errorf("got %d raw unparsed spans, want 0: %+v", len(result.RawUnparsed), result.RawUnparsed)
	}
}

func TestDecode_G1_OrphanSignature(t *testing.T) {
	file := stapFrame(tagApplicationIdentification|signatureBit, []byte("ORPHAN"))

	opts := UnmarshalOptions{}
	result, err := opts.Decode(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.SignatureBlocks) != 1 || !result.SignatureBlocks[0].Orphan {
		t.Fatalf("expected one orphan signature block, got %+v", result.SignatureBlocks)
	}
}

func TestDecode_G1_UnrecognizedTagBecomesRawUnparsed(t *testing.T) {
	const unknownTag = 0x0FFF // not present in any generation's tag table
	file := stapFrame(unknownTag, []byte{0x01, 0x02, 0x03})

	opts := UnmarshalOptions{}
	result, err := opts.Decode(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.RawUnparsed) != 1 {
		t.Fatalf("got %d raw unparsed spans, want 1", len(result.RawUnparsed))
	}
}

func TestDecode_G1_RealTagsAreReachable(t *testing.T) {
	// The tags real G1 cards use for ApplicationIdentification (0x0501)
	// and EventsData (0x0502) differ only in their low byte; a dispatch
	// scheme that discards low-order bits (as tag>>4 once did) would
	// route 0x0502 into the ApplicationIdentification decoder instead of
	// leaving it to unmarshalEventsData.
	if tagApplicationIdentification != 0x0501 {
		t.Fatalf("tagApplicationIdentification = 0x%04X, want 0x0501", tagApplicationIdentification)
	}
	if tagEventsData != 0x0502 {
		t.Fatalf("tagEventsData = 0x%04X, want 0x0502", tagEventsData)
	}

	eventsPayload := make([]byte, 24) // one zeroed CardEventRecord: decodes, contributes nothing
	file := stapFrame(tagEventsData, eventsPayload)

	opts := UnmarshalOptions{}
	result, err := opts.Decode(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.RawUnparsed) != 0 {
		t.Fatalf("0x0502 dispatched to the wrong decoder: got raw unparsed %+v", result.RawUnparsed)
	}
	if result.CardApplication != (model.CardApplication{}) {
		t.Fatalf("0x0502 was misrouted into ApplicationIdentification: got %+v", result.CardApplication)
	}
}

func TestDecode_G2_EnvelopeUnwrapped(t *testing.T) {
	appPayload := []byte{0x01, 0x00, 0x01, 0x0A, 0x0A, 0x00, 0x64, 0x00, 0x05, 0x03}
	appChild := berTLVShortFrame(tagApplicationIdentification, appPayload)
	envelope := berTLVShortFrame(tagEnvelopeG2, appChild)

	opts := UnmarshalOptions{}
	result, err := opts.Decode(envelope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Generation != model.GenerationG2 {
		t.Fatalf("got generation %v, want G2", result.Generation)
	}
	if result.CardApplication.NoOfCardPlaceRecords != 0x03 {
		t.Errorf("envelope child was not dispatched: got %+v", result.CardApplication)
	}
}

func TestDecode_G1DriverActivityAndG2DriverActivityUseDifferentWireTags(t *testing.T) {
	// EF_Driver_Activity_Data is tag 0x0504 on G1 but 0x0524 on G2/G2.2;
	// recordKindFor must resolve both to recordDriverActivityData for
	// their own generation without the two colliding.
	g1Kind, ok := recordKindFor(model.GenerationG1, tagDriverActivityDataG1)
	if !ok || g1Kind != recordDriverActivityData {
		t.Fatalf("G1 tag 0x%04X resolved to (%v, %v), want (recordDriverActivityData, true)", tagDriverActivityDataG1, g1Kind, ok)
	}
	g2Kind, ok := recordKindFor(model.GenerationG2, tagDriverActivityDataG2)
	if !ok || g2Kind != recordDriverActivityData {
		t.Fatalf("G2 tag 0x%04X resolved to (%v, %v), want (recordDriverActivityData, true)", tagDriverActivityDataG2, g2Kind, ok)
	}
	if _, ok := recordKindFor(model.GenerationG1, tagDriverActivityDataG2); ok {
		t.Fatalf("G1 should not recognize the G2 driver activity tag 0x%04X", tagDriverActivityDataG2)
	}
}

func TestDecode_TooShortIsMalformed(t *testing.T) {
	opts := UnmarshalOptions{}
	_, err := opts.Decode([]byte{0x00})
	if err == nil {
		t.Fatal("expected error for too-short input, got nil")
	}
	if _, ok := err.(*model.MalformedFile); !ok {
		t.Errorf("got error of type %T, want *model.MalformedFile", err)
	}
}

func TestDecode_CoversWholeFile(t *testing.T) {
	// Exercises framing.VerifyCoverage's covering-property assertion
	// against the real tag registry: a data record, its paired signature
	// record, and an unrecognized tag together must tile the whole input
	// with no gap or overlap.
	appPayload := []byte{0x01, 0x00, 0x01, 0x0A, 0x0A, 0x00, 0x64, 0x00, 0x05, 0x03}
	data := append(stapFrame(tagApplicationIdentification, appPayload),
		stapFrame(tagApplicationIdentification|signatureBit, []byte("SIGND"))...)
	data = append(data, stapFrame(0x0FFF, []byte{0x01})...)

	nodes, raw := framing.Walk(data, model.GenerationG1, framing.ReadOptions{IsContainer: isContainer})
	if err := framing.VerifyCoverage(len(data), nodes, raw); err != nil {
		t.Fatalf("VerifyCoverage: %v", err)
	}
}
