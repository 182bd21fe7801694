package blfshot

import (
	"bytes"
	_ "crypto/sha256" // registers digest.Canonical

	"github.com/opencontainers/go-digest"
)

const (
	offMagic       int64 = 0x00
	offTypeTag     int64 = 0x0E
	offName        int64 = 0x48
	offDescription int64 = 0x67
	offAuthor      int64 = 0xE8
	offSizeCopyA   int64 = 0x10C
	offSizeCopyB   int64 = 0x144
	offSize        int64 = 0x2B4
	offImage       int64 = 0x2B8
)

// Slot widths are the gaps between a header field and the next field.
const (
	nameSlotLen        = int(offDescription - offName)
	descriptionSlotLen = int(offAuthor - offDescription)
	authorSlotLen      = int(offSizeCopyA - offAuthor)
)

// Magic is the BLF signature at offset 0.
var Magic = [4]byte{'_', 'b', 'l', 'f'}

// TypeTag identifies a saved screenshot among BLF files.
const TypeTag = "halo 3 saved screenshot"

// Footer always follows the image bytes.
var Footer = [17]byte{
	0x5F, 0x65, 0x6F, 0x66, 0x00, 0x00, 0x00, 0x11, 0x00,
	0x01, 0x00, 0x01, 0x00, 0x02, 0xB8, 0x01, 0x00,
}

// sizeOffsets lists every place the image length is recorded. The first
// entry is the one read on load.
var sizeOffsets = [...]int64{offSize, offSizeCopyA, offSizeCopyB}

// ContainerLen returns the total stream length for an image of n bytes.
func ContainerLen(n int) int64 {
	return offImage + int64(n) + int64(len(Footer))
}

type Compression uint16

const (
	CompNone Compression = 0x0
	CompZIP  Compression = 0x1
	CompZSTD Compression = 0x2
	CompLZ4  Compression = 0x3
	CompBR   Compression = 0x4
)

func (c Compression) known() bool { return c <= CompBR }

// Header holds the human readable metadata of a screenshot.
type Header struct {
	Name        string
	Description string
	Author      string
}

// Image is the embedded picture. Size always equals len(Data) for images
// produced by this package.
type Image struct {
	Size uint32
	Data []byte
}

// Digest returns the sha256 content digest of the image bytes.
func (im Image) Digest() digest.Digest {
	return digest.FromBytes(im.Data)
}

func (im Image) clone() Image {
	return Image{Size: im.Size, Data: bytes.Clone(im.Data)}
}
