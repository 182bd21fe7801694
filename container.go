package blfshot

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Container is an open screenshot file. It owns its stream exclusively and
// is not safe for concurrent use.
//
// The zero Container is not open; every method on it returns ErrClosed.
type Container struct {
	// Header is loaded on open and written back by UpdateHeader.
	Header Header

	s     Stream
	cfg   config
	image Image
}

// Open opens the screenshot at path for reading and writing. Updates are
// applied to the file in place.
func Open(path string, opts ...Option) (*Container, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return New(f, opts...)
}

// OpenBytes opens a screenshot held in memory. b is copied; use WriteTo to
// get the updated container back.
func OpenBytes(b []byte, opts ...Option) (*Container, error) {
	return New(NewBuffer(bytes.Clone(b)), opts...)
}

// New takes ownership of s, validates it and loads the header and image.
// If s implements io.Closer it is closed by Container.Close, and also when
// New fails.
//
// New returns an error matching ErrFormat if the magic or type tag is
// wrong and ErrTruncated if the image runs past the end of the stream.
func New(s Stream, opts ...Option) (*Container, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	c := &Container{s: s, cfg: cfg}
	if err := c.load(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) load() error {
	ok, err := c.IsValid()
	if err != nil {
		return err
	}
	if !ok {
		return ErrFormat
	}
	if err := c.LoadHeader(); err != nil {
		return err
	}
	return c.LoadImage()
}

func (c *Container) checkOpen() error {
	if c == nil || c.s == nil {
		return ErrClosed
	}
	return nil
}

// Stream returns the underlying stream, or nil once closed. Writing to it
// directly bypasses the size and footer bookkeeping.
func (c *Container) Stream() Stream {
	if c == nil {
		return nil
	}
	return c.s
}

// Image returns a copy of the in-memory image.
func (c *Container) Image() Image {
	if c == nil {
		return Image{}
	}
	return c.image.clone()
}

// IsValid reports whether the stream starts with the BLF magic and carries
// the saved screenshot type tag.
func (c *Container) IsValid() (bool, error) {
	if err := c.checkOpen(); err != nil {
		return false, err
	}
	return isValid(c.s)
}

// LoadHeader reads the name, description and author from the stream.
func (c *Container) LoadHeader() error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	var h Header
	for _, f := range headerFields {
		slot, err := readAt(c.s, f.off, f.width)
		if err != nil {
			return err
		}
		*f.value(&h) = f.decode(slot)
	}
	c.Header = h
	return nil
}

// UpdateHeader writes Header back to its fixed slots. Nothing is written if
// any field is too long for its slot or cannot be encoded.
func (c *Container) UpdateHeader() error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	encoded, err := encodeHeader(&c.Header)
	if err != nil {
		return err
	}
	for i, f := range headerFields {
		if err := writeAt(c.s, f.off, encoded[i]); err != nil {
			return err
		}
	}
	return nil
}

// LoadImage reads the image size at 0x2B4 and the image bytes after it.
func (c *Container) LoadImage() error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	size, err := readInt32At(c.s, offSize)
	if err != nil {
		return err
	}
	if size < 0 {
		return fmt.Errorf("%w: negative image size %d", ErrFormat, size)
	}
	if c.cfg.strictLengths {
		for _, off := range sizeOffsets[1:] {
			v, err := readInt32At(c.s, off)
			if err != nil {
				return err
			}
			if v != size {
				return fmt.Errorf("%w: image size at 0x%X is %d, want %d", ErrFormat, off, v, size)
			}
		}
	}
	if uint32(size) > c.cfg.limits.MaxImageSize {
		return fmt.Errorf("%w: image size %d", ErrLimitExceeded, size)
	}
	n, err := streamLen(c.s)
	if err != nil {
		return err
	}
	if remaining := n - offImage; remaining < int64(size) {
		return fmt.Errorf("%w: image size %d, %d bytes left", ErrTruncated, size, max(remaining, 0))
	}
	data, err := readAt(c.s, offImage, int(size))
	if err != nil {
		return err
	}
	c.image = Image{Size: uint32(size), Data: data}
	return nil
}

// UpdateImage writes the in-memory image to the stream. It records the
// size at all three size offsets, resizes the stream to exactly fit the
// image and footer, then writes the image and the footer.
func (c *Container) UpdateImage() error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	size := int32(c.image.Size)
	for _, off := range sizeOffsets {
		if err := writeInt32At(c.s, off, size); err != nil {
			return err
		}
	}
	if err := c.s.Truncate(ContainerLen(len(c.image.Data))); err != nil {
		return err
	}
	if err := writeAt(c.s, offImage, c.image.Data); err != nil {
		return err
	}
	return writeAt(c.s, offImage+int64(size), Footer[:])
}

// Update writes the header and then the image.
func (c *Container) Update() error {
	if err := c.UpdateHeader(); err != nil {
		return err
	}
	return c.UpdateImage()
}

// Inject replaces the in-memory image with a copy of b. The stream is not
// touched until UpdateImage or Update.
func (c *Container) Inject(b []byte) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if uint64(len(b)) > uint64(c.cfg.limits.MaxImageSize) {
		return fmt.Errorf("%w: image size %d", ErrLimitExceeded, len(b))
	}
	c.image = Image{Size: uint32(len(b)), Data: bytes.Clone(b)}
	return nil
}

// InjectFrom reads r to EOF and injects the result.
func (c *Container) InjectFrom(r io.Reader) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	limit := int64(c.cfg.limits.MaxImageSize)
	b, err := readAll(io.LimitReader(r, limit+1))
	if err != nil {
		return err
	}
	return c.Inject(b)
}

// Extract returns a copy of the in-memory image bytes. It reflects the
// last load or inject, not the stream.
func (c *Container) Extract() ([]byte, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return bytes.Clone(c.image.Data), nil
}

// WriteTo copies the whole stream, from offset 0, to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	if err := c.checkOpen(); err != nil {
		return 0, err
	}
	if _, err := c.s.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return io.Copy(w, c.s)
}

// Close releases the stream. The container cannot be used afterwards.
func (c *Container) Close() error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	s := c.s
	c.s = nil
	c.image = Image{}
	if cl, ok := s.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
