package archive

import "bytes"

// Format identifies an archive/compression container by content, never
// by file extension — a renamed .tar.gz still decompresses correctly.
type Format int

const (
	FormatUnknown Format = iota
	FormatTar
	FormatGzip
	FormatBzip2
	FormatXz
	FormatZip
)

var magicPrefixes = []struct {
	format Format
	magic  []byte
}{
	{FormatGzip, []byte{0x1f, 0x8b}},
	{FormatBzip2, []byte("BZh")},
	{FormatXz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{FormatZip, []byte{'P', 'K', 0x03, 0x04}},
	// Empty zip archives use the end-of-central-directory signature
	// instead of a local file header.
	{FormatZip, []byte{'P', 'K', 0x05, 0x06}},
}

// tarMagicOffset is where the "ustar" string sits in a POSIX tar header,
// when present; old-style tar headers have no magic at all, so tar
// detection falls back to treating anything that isn't recognized as one
// of the other formats as a candidate tar stream and letting archive/tar
// itself reject it.
const tarMagicOffset = 257

// Detect identifies the outermost format from the first bytes of a
// stream. It never consults the source name.
func Detect(head []byte) Format {
	for _, m := range magicPrefixes {
		if bytes.HasPrefix(head, m.magic) {
			return m.format
		}
	}
	if len(head) >= tarMagicOffset+5 && bytes.HasPrefix(head[tarMagicOffset:], []byte("ustar")) {
		return FormatTar
	}
	return FormatUnknown
}
