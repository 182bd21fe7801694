package blfshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Every access seeks to an absolute offset first, so no cursor state is
// carried between calls.

func readAt(s io.ReadSeeker, off int64, n int) ([]byte, error) {
	if _, err := s.Seek(off, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(s, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: want %d bytes at 0x%X", ErrTruncated, n, off)
		}
		return nil, err
	}
	return buf, nil
}

func writeAt(s io.WriteSeeker, off int64, p []byte) error {
	if _, err := s.Seek(off, io.SeekStart); err != nil {
		return err
	}
	_, err := s.Write(p)
	return err
}

func readInt32At(s io.ReadSeeker, off int64) (int32, error) {
	b, err := readAt(s, off, 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func writeInt32At(s io.WriteSeeker, off int64, v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	return writeAt(s, off, buf[:])
}

func streamLen(s io.Seeker) (int64, error) {
	return s.Seek(0, io.SeekEnd)
}

// copyPrefix copies the first n bytes of s to w.
func copyPrefix(w io.Writer, s io.ReadSeeker, n int64) error {
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := io.CopyN(w, s, n); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: want %d bytes", ErrTruncated, n)
		}
		return err
	}
	return nil
}
