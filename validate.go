package blfshot

import (
	"bytes"
	"errors"
	"io"
)

// isValid checks the magic and type tag. A stream too short to hold them
// is not valid; any other I/O error is returned.
func isValid(s io.ReadSeeker) (bool, error) {
	magic, err := readAt(s, offMagic, len(Magic))
	if err != nil {
		if errors.Is(err, ErrTruncated) {
			return false, nil
		}
		return false, err
	}
	if !bytes.Equal(magic, Magic[:]) {
		return false, nil
	}
	tag, err := readAt(s, offTypeTag, len(TypeTag))
	if err != nil {
		if errors.Is(err, ErrTruncated) {
			return false, nil
		}
		return false, err
	}
	return string(tag) == TypeTag, nil
}

// headerField describes one fixed-width text slot.
type headerField struct {
	name  string
	off   int64
	width int
	wide  bool // UTF-16 when true, ASCII otherwise
	value func(*Header) *string
}

var headerFields = [...]headerField{
	{"name", offName, nameSlotLen, true, func(h *Header) *string { return &h.Name }},
	{"description", offDescription, descriptionSlotLen, true, func(h *Header) *string { return &h.Description }},
	{"author", offAuthor, authorSlotLen, false, func(h *Header) *string { return &h.Author }},
}

func (f headerField) decode(slot []byte) string {
	if f.wide {
		return decodeUTF16(slot)
	}
	return decodeASCII(slot)
}

// encode returns the slot bytes for s, terminator included, or a
// *FieldError if they would run into the next field.
func (f headerField) encode(s string) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if f.wide {
		b, err = encodeUTF16(s)
	} else {
		b, err = encodeASCII(s)
	}
	if err != nil {
		return nil, err
	}
	if len(b) > f.width {
		return nil, &FieldError{Field: f.name, Len: len(b), Max: f.width}
	}
	return b, nil
}

// encodeHeader encodes every field before anything is written so that an
// oversized field leaves the stream untouched.
func encodeHeader(h *Header) ([][]byte, error) {
	out := make([][]byte, len(headerFields))
	for i, f := range headerFields {
		b, err := f.encode(*f.value(h))
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}
