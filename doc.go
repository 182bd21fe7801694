// Package blfshot reads and rewrites Halo 3 saved screenshot containers.
//
// A "screen.shot" file is a BLF container holding a few lines of metadata
// and an embedded JPEG. The package treats the image as an opaque blob: it
// never decodes or recompresses it.
//
// # File Layout
//
// All offsets are absolute and all integers are big-endian:
//
//	0x000  "_blf"                      magic
//	0x00E  "halo 3 saved screenshot"   type tag
//	0x048  name                        UTF-16, null-terminated
//	0x067  description                 UTF-16, null-terminated
//	0x0E8  author                      ASCII, null-terminated
//	0x10C  image size (copy)           int32
//	0x144  image size (copy)           int32
//	0x2B4  image size                  int32, authoritative on load
//	0x2B8  image bytes
//	0x2B8+size  17-byte footer
//
// The three size fields, the total stream length and the footer position
// all depend on the image length. [Container.UpdateImage] is the only code
// path that writes them and it always writes all of them together.
//
// # Basic Usage
//
// To replace the image of a screenshot on disk:
//
//	c, err := blfshot.Open("screen.shot")
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//	if err := c.Inject(jpegBytes); err != nil {
//		return err
//	}
//	c.Header.Name = "Sunrise"
//	err = c.Update()
//
// To read a screenshot already held in memory:
//
//	c, err := blfshot.OpenBytes(data)
//	...
//	img, err := c.Extract()
//
// # Header Slots
//
// Header fields live in fixed-width slots. [Container.UpdateHeader] refuses
// text that would not fit, together with its terminator, in the space up to
// the next field, returning an error matching [ErrFieldTooLong].
//
// # Snapshots
//
// Updates are not transactional. [Container.Snapshot] captures the whole
// stream as a compressed blob which [Container.Restore] can put back if a
// later update fails half way. [Container.SnapshotTo] streams the same blob
// to any writer, such as a backup file.
package blfshot
