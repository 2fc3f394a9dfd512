package framing

import (
	"testing"

	"github.com/haulageworks/tachograph-go/internal/model"
)

func noContainers(model.Generation, uint16) bool { return false }

func TestWalk_G1_STAP_Leaf(t *testing.T) {
	// tag 0x0501, record type 0x00 (unused), length 3, payload "abc".
	data := []byte{0x05, 0x01, 0x00, 0x00, 0x03, 'a', 'b', 'c'}

	nodes, raw := Walk(data, model.GenerationG1, ReadOptions{IsContainer: noContainers})
	if len(raw) != 0 {
		t.Fatalf("unexpected raw spans: %+v", raw)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	n := nodes[0]
	if n.Tag != 0x0501 || n.Offset != 0 || n.Length != 8 {
		t.Errorf("unexpected node framing: %+v", n)
	}
	if string(n.Payload) != "abc" {
		t.Errorf("got payload %q, want %q", n.Payload, "abc")
	}
}

func TestWalk_G2_BERTLV_ShortForm(t *testing.T) {
	// tag 0x0521, short-form length 2, payload "hi".
	data := []byte{0x05, 0x21, 0x02, 'h', 'i'}

	nodes, raw := Walk(data, model.GenerationG2, ReadOptions{IsContainer: noContainers})
	if len(raw) != 0 {
		t.Fatalf("unexpected raw spans: %+v", raw)
	}
	if len(nodes) != 1 || string(nodes[0].Payload) != "hi" {
		t.Fatalf("unexpected nodes: %+v", nodes)
	}
}

func TestWalk_G2_BERTLV_LongForm(t *testing.T) {
	payload := make([]byte, 200)
	for i := range payload {
		payload[i] = byte(i)
	}
	// long-form length: 0x81 (1 length byte follows) then 200.
	data := append([]byte{0x05, 0x21, 0x81, 0xC8}, payload...)

	nodes, _ := Walk(data, model.GenerationG2, ReadOptions{IsContainer: noContainers})
	if len(nodes) != 1 || len(nodes[0].Payload) != 200 {
		t.Fatalf("unexpected nodes: %+v", nodes)
	}
}

func TestWalk_ContainerRecursion(t *testing.T) {
	// Inner leaf: tag 0x0011, length 1, payload 0x42.
	inner := []byte{0x00, 0x11, 0x01, 0x42}
	// Outer container: tag 0x0500, length = len(inner).
	data := append([]byte{0x05, 0x00, byte(len(inner))}, inner...)

	isContainer := func(_ model.Generation, tag uint16) bool { return tag == 0x0500 }
	nodes, raw := Walk(data, model.GenerationG2, ReadOptions{IsContainer: isContainer})
	if len(raw) != 0 {
		t.Fatalf("unexpected raw spans: %+v", raw)
	}
	if len(nodes) != 1 || !nodes[0].IsContainer {
		t.Fatalf("want one container node, got %+v", nodes)
	}
	children := nodes[0].Children
	if len(children) != 1 || children[0].Tag != 0x0011 {
		t.Fatalf("unexpected children: %+v", children)
	}
	if string(children[0].Payload) != "\x42" {
		t.Errorf("got payload %v, want 0x42", children[0].Payload)
	}
}

func TestWalk_MalformedSpanRecoversAndAdvances(t *testing.T) {
	// A garbage byte, then a valid STAP record whose unused record-type
	// byte is 0x01. Read from offset 0, STAP takes bytes 3-4 (0x01 0x00)
	// as a 256-byte length that overruns the input. Strict framing is
	// used because the fallback chain's short-form BER-TLV reading would
	// otherwise frame the garbage byte together with the record's first
	// bytes (tag 0xFF05, length 1).
	valid := []byte{0x05, 0x01, 0x01, 0x00, 0x01, 'x'}
	data := append([]byte{0xFF}, valid...)

	nodes, raw := Walk(data, model.GenerationG1, ReadOptions{IsContainer: noContainers, StrictFraming: true})
	if len(raw) != 1 {
		t.Fatalf("got %d raw spans, want 1: %+v", len(raw), raw)
	}
	if raw[0].Offset != 0 || raw[0].Length != 1 {
		t.Errorf("unexpected raw span: %+v", raw[0])
	}
	if len(nodes) != 1 || nodes[0].Tag != 0x0501 || nodes[0].Offset != 1 {
		t.Fatalf("unexpected recovered node: %+v", nodes)
	}
}

func TestWalk_G22PaddingByteSkipped(t *testing.T) {
	valid := []byte{0x05, 0x21, 0x01, 0x42}
	data := append([]byte{0x00}, valid...)

	nodes, raw := Walk(data, model.GenerationG22, ReadOptions{IsContainer: noContainers, SkipLeadingPadding: true})
	if len(raw) != 0 {
		t.Fatalf("unexpected raw spans: %+v", raw)
	}
	if len(nodes) != 1 || nodes[0].Offset != 0 {
		t.Fatalf("unexpected nodes: %+v", nodes)
	}
}
