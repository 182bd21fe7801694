package blfshot

import (
	"bytes"
	"errors"
	"testing"
)

func TestUTF16_BigEndianNullTerminated(t *testing.T) {
	b, err := encodeUTF16("Hi")
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x00, 'H', 0x00, 'i', 0x00, 0x00}; !bytes.Equal(b, want) {
		t.Fatalf("encoded = % X", b)
	}

	cases := []struct {
		name string
		slot []byte
		want string
	}{
		{"terminated", []byte{0x00, 'H', 0x00, 'i', 0x00, 0x00, 0x00, 'x'}, "Hi"},
		{"no terminator", []byte{0x00, 'a', 0x00, 'b'}, "ab"},
		{"odd trailing byte", []byte{0x00, 'a', 0x00}, "a"},
		{"empty", []byte{0x00, 0x00, 0x00, 'a'}, ""},
		{"surrogate pair", []byte{0xD8, 0x3D, 0xDE, 0x80, 0, 0}, "\U0001F680"},
		{"unpaired surrogate", []byte{0xD8, 0x3D, 0x00, 'a', 0, 0}, "\uFFFDa"},
	}
	for _, tc := range cases {
		if got := decodeUTF16(tc.slot); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestASCII(t *testing.T) {
	b, err := encodeASCII("Bob")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, []byte("Bob\x00")) {
		t.Fatalf("encoded = %q", b)
	}
	if got := decodeASCII([]byte("Bob\x00junk")); got != "Bob" {
		t.Fatalf("got %q", got)
	}
	if got := decodeASCII([]byte{'a', 0xE9, 'b'}); got != "a?b" {
		t.Fatalf("got %q", got)
	}
	if _, err := encodeASCII("é"); !errors.Is(err, ErrInvalidText) {
		t.Fatalf("expected ErrInvalidText, got %v", err)
	}
}

func TestHeaderFieldSlots(t *testing.T) {
	want := map[string]int{"name": 31, "description": 129, "author": 36}
	for _, f := range headerFields {
		if f.width != want[f.name] {
			t.Fatalf("%s slot = %d, want %d", f.name, f.width, want[f.name])
		}
		if f.off+int64(f.width) > offSizeCopyA {
			t.Fatalf("%s slot overlaps the size fields", f.name)
		}
	}
}

func TestLimitsWithDefaults(t *testing.T) {
	l := (Limits{}).withDefaults()
	if l.MaxImageSize == 0 || l.MaxSnapshotSize == 0 {
		t.Fatal("expected defaults")
	}
	custom := (Limits{MaxImageSize: 7}).withDefaults()
	if custom.MaxImageSize != 7 {
		t.Fatalf("expected custom MaxImageSize, got %d", custom.MaxImageSize)
	}
	if capped := (Limits{MaxImageSize: 1 << 31}).withDefaults(); capped.MaxImageSize != 1<<31-1 {
		t.Fatalf("expected MaxInt32 cap, got %d", capped.MaxImageSize)
	}
}
