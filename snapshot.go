package blfshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/opencontainers/go-digest"
)

// snapshotMagic starts every blob produced by Container.Snapshot.
var snapshotMagic = [4]byte{'B', 'L', 'F', 'S'}

// snapshotHeader precedes the codec output:
//
//	0   magic   [4]byte
//	4   comp    uint16  Compression
//	6   dlen    uint16  length of the digest string
//	8   size    uint64  raw container length
//	16  digest  dlen bytes, digest of the raw container
type snapshotHeader struct {
	Compression Compression
	Size        uint64
	Digest      digest.Digest
}

const snapshotFixedLen = 16

func writeSnapshotHeader(w io.Writer, h snapshotHeader) error {
	d := h.Digest.String()
	buf := make([]byte, snapshotFixedLen, snapshotFixedLen+len(d))
	copy(buf[0:4], snapshotMagic[:])
	binary.LittleEndian.PutUint16(buf[4:6], uint16(h.Compression))
	binary.LittleEndian.PutUint16(buf[6:8], uint16(len(d)))
	binary.LittleEndian.PutUint64(buf[8:16], h.Size)
	buf = append(buf, d...)
	_, err := w.Write(buf)
	return err
}

// readSnapshotHeader parses the header and returns the codec output after it.
func readSnapshotHeader(b []byte) (snapshotHeader, []byte, error) {
	if len(b) < snapshotFixedLen {
		return snapshotHeader{}, nil, fmt.Errorf("%w: %d bytes", ErrInvalidSnapshot, len(b))
	}
	if !bytes.Equal(b[0:4], snapshotMagic[:]) {
		return snapshotHeader{}, nil, fmt.Errorf("%w: bad magic", ErrInvalidSnapshot)
	}
	h := snapshotHeader{
		Compression: Compression(binary.LittleEndian.Uint16(b[4:6])),
		Size:        binary.LittleEndian.Uint64(b[8:16]),
	}
	dlen := int(binary.LittleEndian.Uint16(b[6:8]))
	rest := b[snapshotFixedLen:]
	if len(rest) < dlen {
		return snapshotHeader{}, nil, fmt.Errorf("%w: digest runs past end", ErrInvalidSnapshot)
	}
	d, err := digest.Parse(string(rest[:dlen]))
	if err != nil {
		return snapshotHeader{}, nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	h.Digest = d
	return h, rest[dlen:], nil
}

// Snapshot captures the whole stream as a compressed, digest-checked blob
// that Restore can write back. The codec is set with
// WithSnapshotCompression.
func (c *Container) Snapshot() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.SnapshotTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SnapshotTo writes a snapshot of the stream to w. The stream is read
// twice, once for the digest and once through the codec, and is never
// held in memory as a whole.
func (c *Container) SnapshotTo(w io.Writer) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	comp := c.cfg.snapshotComp
	if !comp.known() {
		return fmt.Errorf("%w: unknown compression %d", ErrInvalidPayload, comp)
	}
	n, err := streamLen(c.s)
	if err != nil {
		return err
	}
	if uint64(n) > c.cfg.limits.MaxSnapshotSize {
		return fmt.Errorf("%w: container is %d bytes", ErrLimitExceeded, n)
	}

	dg := digest.Canonical.Digester()
	if err := copyPrefix(dg.Hash(), c.s, n); err != nil {
		return err
	}
	h := snapshotHeader{Compression: comp, Size: uint64(n), Digest: dg.Digest()}
	if err := writeSnapshotHeader(w, h); err != nil {
		return err
	}

	enc, err := newEncoder(comp, w)
	if err != nil {
		return err
	}
	if err := copyPrefix(enc, c.s, n); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// decodeSnapshot returns the raw container held in snap once its length and
// digest check out.
func decodeSnapshot(snap []byte, limit uint64) ([]byte, error) {
	h, payload, err := readSnapshotHeader(snap)
	if err != nil {
		return nil, err
	}
	if h.Size > limit {
		return nil, fmt.Errorf("%w: container is %d bytes", ErrLimitExceeded, h.Size)
	}
	rc, err := newDecoder(h.Compression, payload, h.Size)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	raw, err := readAll(io.LimitReader(rc, int64(h.Size)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if uint64(len(raw)) != h.Size {
		return nil, fmt.Errorf("%w: payload decodes to %d bytes, header says %d", ErrInvalidSnapshot, len(raw), h.Size)
	}
	if got := digest.FromBytes(raw); got != h.Digest {
		return nil, fmt.Errorf("%w: digest %s, want %s", ErrInvalidSnapshot, got, h.Digest)
	}
	return raw, nil
}

// Restore replaces the stream with the container captured in snap and
// reloads the header and image. The snapshot is decoded and loaded with the
// container's options before the stream is touched, so a rejected snapshot
// leaves both the stream and the in-memory state as they were. If writing
// to the stream fails part way, the stream may hold part of the snapshot
// while Header and the image keep their previous values.
func (c *Container) Restore(snap []byte) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	raw, err := decodeSnapshot(snap, c.cfg.limits.MaxSnapshotSize)
	if err != nil {
		return err
	}
	staged := &Container{s: NewBuffer(raw), cfg: c.cfg}
	if err := staged.load(); err != nil {
		return err
	}

	if err := c.s.Truncate(0); err != nil {
		return err
	}
	if err := writeAt(c.s, 0, raw); err != nil {
		return err
	}
	c.Header = staged.Header
	c.image = staged.image
	return nil
}
