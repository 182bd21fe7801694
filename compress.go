package blfshot

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Function variables for testing injection.
var (
	newZstdWriter = func(w io.Writer) (*zstd.Encoder, error) { return zstd.NewWriter(w) }
	newZstdReader = func(r io.Reader) (*zstd.Decoder, error) { return zstd.NewReader(r) }
	readAll       = io.ReadAll
)

// snapshotEntry names the single entry of a ZIP snapshot.
const snapshotEntry = "screen.shot"

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// zipEntry writes the snapshot entry. Close finishes the archive.
type zipEntry struct {
	io.Writer
	zw *zip.Writer
}

func (e zipEntry) Close() error { return e.zw.Close() }

// newEncoder returns a writer that compresses the container bytes into w.
// Close flushes the codec and leaves w open.
func newEncoder(comp Compression, w io.Writer) (io.WriteCloser, error) {
	switch comp {
	case CompNone:
		return nopWriteCloser{w}, nil
	case CompZIP:
		zw := zip.NewWriter(w)
		entry, err := zw.Create(snapshotEntry)
		if err != nil {
			return nil, err
		}
		return zipEntry{Writer: entry, zw: zw}, nil
	case CompZSTD:
		enc, err := newZstdWriter(w)
		if err != nil {
			return nil, err
		}
		return enc, nil
	case CompLZ4:
		return lz4.NewWriter(w), nil
	case CompBR:
		return brotli.NewWriter(w), nil
	}
	return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidPayload, comp)
}

// newDecoder returns a reader over the container held in payload. size is
// the raw length recorded in the snapshot header.
func newDecoder(comp Compression, payload []byte, size uint64) (io.ReadCloser, error) {
	r := bytes.NewReader(payload)
	switch comp {
	case CompNone:
		return io.NopCloser(r), nil
	case CompZIP:
		return openZipEntry(r, size)
	case CompZSTD:
		dec, err := newZstdReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
		return dec.IOReadCloser(), nil
	case CompLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CompBR:
		return io.NopCloser(brotli.NewReader(r)), nil
	}
	return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidPayload, comp)
}

// openZipEntry opens the snapshot entry, which must be the only entry and
// must declare size bytes.
func openZipEntry(r *bytes.Reader, size uint64) (io.ReadCloser, error) {
	zr, err := zip.NewReader(r, r.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if len(zr.File) != 1 || zr.File[0].Name != snapshotEntry {
		return nil, fmt.Errorf("%w: zip must hold only %s", ErrInvalidSnapshot, snapshotEntry)
	}
	zf := zr.File[0]
	if zf.FileInfo().IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidSnapshot, snapshotEntry)
	}
	if zf.UncompressedSize64 != size {
		return nil, fmt.Errorf("%w: zip entry holds %d bytes, header says %d", ErrInvalidSnapshot, zf.UncompressedSize64, size)
	}
	return zf.Open()
}
