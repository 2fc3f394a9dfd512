package dd

import "testing"

func TestBCDRoundTrip(t *testing.T) {
	opts := UnmarshalOptions{}
	tests := []uint64{0, 7, 42, 1234, 20240315}
	for _, want := range tests {
		dst := make([]byte, 4)
		MarshalBCD(dst, want)
		got, err := opts.UnmarshalBCD(dst)
		if err != nil {
			t.Fatalf("unmarshal failed for %d: %v", want, err)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
}

func TestUnmarshalBCD_InvalidNibble(t *testing.T) {
	opts := UnmarshalOptions{}
	if _, err := opts.UnmarshalBCD([]byte{0xFA}); err == nil {
		t.Fatal("want error for invalid BCD nibble")
	}
}
