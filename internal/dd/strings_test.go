package dd

import "testing"

func TestUnmarshalStringValue(t *testing.T) {
	opts := UnmarshalOptions{}

	t.Run("ISO-8859-1", func(t *testing.T) {
		data := append([]byte{0x01}, []byte("ACME TRANSPORT  ")...)
		got, err := opts.UnmarshalStringValue(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "ACME TRANSPORT"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("code page 255 is empty", func(t *testing.T) {
		got, err := opts.UnmarshalStringValue([]byte{0xFF, 0x00, 0x00})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "" {
			t.Errorf("got %q, want empty string", got)
		}
	})

	t.Run("all-padding data decodes empty", func(t *testing.T) {
		data := []byte{0x01, 0xFF, 0xFF, 0xFF}
		got, err := opts.UnmarshalStringValue(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "" {
			t.Errorf("got %q, want empty string", got)
		}
	})
}

func TestUnmarshalIA5String(t *testing.T) {
	opts := UnmarshalOptions{}

	got, err := opts.UnmarshalIA5String([]byte("AB123CD\x00\x00\x00\x00\x00\x00\x00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "AB123CD"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnmarshalIA5String_RejectsNonASCII(t *testing.T) {
	opts := UnmarshalOptions{}
	if _, err := opts.UnmarshalIA5String([]byte{0xE9}); err == nil {
		t.Fatal("want error for non-ASCII byte")
	}
}
