package dd

import (
	"testing"
	"time"
)

func TestUnmarshalTimeReal(t *testing.T) {
	opts := UnmarshalOptions{}

	t.Run("zero is not-set sentinel", func(t *testing.T) {
		got, err := opts.UnmarshalTimeReal([]byte{0x00, 0x00, 0x00, 0x00})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsZero() {
			t.Fatalf("want zero time, got %v", got)
		}
	})

	t.Run("2020-01-01T00:00:00Z", func(t *testing.T) {
		// 1577836800 = 2020-01-01T00:00:00Z
		got, err := opts.UnmarshalTimeReal([]byte{0x5E, 0x0D, 0x6D, 0x80})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("wrong length", func(t *testing.T) {
		if _, err := opts.UnmarshalTimeReal([]byte{0x00, 0x00, 0x00}); err == nil {
			t.Fatal("want error for short input")
		}
	})
}

func TestUnmarshalDatef(t *testing.T) {
	opts := UnmarshalOptions{}
	got, err := opts.UnmarshalDatef([]byte{0x20, 0x24, 0x03, 0x15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUnmarshalDatef_InvalidMonthRejected(t *testing.T) {
	opts := UnmarshalOptions{}
	if _, err := opts.UnmarshalDatef([]byte{0x20, 0x24, 0x13, 0x01}); err == nil {
		t.Fatal("want error for month 13")
	}
}

func TestUnmarshalBirthDate_FallsBackToTimeReal(t *testing.T) {
	opts := UnmarshalOptions{}
	// 1577836800 as a raw TimeReal has bytes 5E 0D 6D 80: byte[2]=0x6D
	// (nibbles 6,D) is not valid BCD, so the Datef attempt must fail and
	// the TimeReal fallback must kick in.
	data := []byte{0x5E, 0x0D, 0x6D, 0x80}
	got, usedTimeReal, err := opts.UnmarshalBirthDate(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !usedTimeReal {
		t.Fatal("want usedTimeReal=true")
	}
	want := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUnmarshalBirthDate_Idempotent(t *testing.T) {
	// BirthDate decode must be idempotent: re-decoding the same raw bytes
	// yields the same value both times.
	opts := UnmarshalOptions{}
	data := []byte{0x19, 0x85, 0x06, 0x21}
	first, _, err := opts.UnmarshalBirthDate(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _, err := opts.UnmarshalBirthDate(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("birth date decode is not idempotent: %v != %v", first, second)
	}
}
