package blfshot

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Header text is null-terminated with no length prefix. UTF-16 uses
// big-endian code units to match the rest of the container.
var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// decodeUTF16 decodes slot up to the first 0x0000 code unit, or the whole
// slot if there is none. A trailing odd byte is ignored. Unpaired
// surrogates decode as U+FFFD, so reading a slot never fails.
func decodeUTF16(slot []byte) string {
	n := 0
	for ; n+1 < len(slot); n += 2 {
		if slot[n] == 0 && slot[n+1] == 0 {
			break
		}
	}
	if n+1 >= len(slot) {
		n = len(slot) &^ 1
	}
	b, _ := utf16BE.NewDecoder().Bytes(slot[:n])
	return string(b)
}

func encodeUTF16(s string) ([]byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, fmt.Errorf("%w: embedded NUL", ErrInvalidText)
	}
	b, err := utf16BE.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidText, err)
	}
	return append(b, 0x00, 0x00), nil
}

// decodeASCII decodes slot up to the first NUL. Bytes above 0x7F become
// '?'.
func decodeASCII(slot []byte) string {
	if i := bytes.IndexByte(slot, 0); i >= 0 {
		slot = slot[:i]
	}
	out := make([]byte, len(slot))
	for i, c := range slot {
		if c > 0x7F {
			c = '?'
		}
		out[i] = c
	}
	return string(out)
}

func encodeASCII(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)+1)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == 0 || c > 0x7F {
			return nil, fmt.Errorf("%w: byte 0x%02X at %d is not ASCII", ErrInvalidText, c, i)
		}
		out = append(out, c)
	}
	return append(out, 0x00), nil
}
