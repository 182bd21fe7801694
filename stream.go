package blfshot

import (
	"errors"
	"io"
)

// Stream is the byte stream a Container edits. *os.File and *Buffer
// satisfy it.
type Stream interface {
	io.ReadWriteSeeker
	Truncate(size int64) error
}

var errNegativeOffset = errors.New("blfshot: negative offset")

// Buffer is an in-memory Stream. Writes past the end grow the buffer and
// zero-fill any gap, the way a file would.
type Buffer struct {
	buf []byte
	off int64
}

// NewBuffer returns a Buffer positioned at 0 that takes ownership of b.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{buf: b}
}

// Bytes returns the buffer contents. The slice aliases the buffer until
// the next write or truncate.
func (b *Buffer) Bytes() []byte { return b.buf }

func (b *Buffer) Len() int { return len(b.buf) }

func (b *Buffer) Read(p []byte) (int, error) {
	if b.off >= int64(len(b.buf)) {
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.off:])
	b.off += int64(n)
	return n, nil
}

func (b *Buffer) Write(p []byte) (int, error) {
	end := b.off + int64(len(p))
	if end > int64(len(b.buf)) {
		b.grow(end)
	}
	n := copy(b.buf[b.off:end], p)
	b.off = end
	return n, nil
}

func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.off + offset
	case io.SeekEnd:
		abs = int64(len(b.buf)) + offset
	default:
		return 0, errors.New("blfshot: invalid whence")
	}
	if abs < 0 {
		return 0, errNegativeOffset
	}
	b.off = abs
	return abs, nil
}

// Truncate changes the buffer length. The read/write offset is left alone.
func (b *Buffer) Truncate(size int64) error {
	if size < 0 {
		return errNegativeOffset
	}
	if size <= int64(len(b.buf)) {
		b.buf = b.buf[:size]
		return nil
	}
	b.grow(size)
	return nil
}

func (b *Buffer) grow(size int64) {
	b.buf = append(b.buf, make([]byte, size-int64(len(b.buf)))...)
}
