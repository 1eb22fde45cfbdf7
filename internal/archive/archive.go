package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Entry describes one archive member after path normalization.
type Entry struct {
	Name  string
	Size  int64
	IsDir bool
}

// VisitFunc is called once per archive entry. For regular files content
// is a reader bounded to exactly Size decompressed bytes and subject to
// the configured bomb limits; for directories content is nil.
type VisitFunc func(entry Entry, content io.Reader) error

// ErrNeedsReaderAt is returned when the outermost container is zip but
// the caller supplied no io.ReaderAt — zip's central directory sits at
// the end of the file and cannot be located from a forward-only stream.
var ErrNeedsReaderAt = errors.New("archive: zip requires random access to the underlying source")

const sniffLen = 512

// Walk reads every entry from an archive, detecting gzip/bzip2/xz/zip/tar
// by magic bytes and dispatching to the tar or zip pipeline. ra and size
// are required only when the outermost format turns out to be zip.
func Walk(r io.Reader, ra io.ReaderAt, size int64, limits Limits, visit VisitFunc) error {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	head = head[:n]

	format := Detect(head)
	rest := io.MultiReader(bytes.NewReader(head), r)

	switch format {
	case FormatZip:
		if ra == nil {
			return ErrNeedsReaderAt
		}
		return walkZip(ra, size, limits, visit)
	case FormatGzip, FormatBzip2, FormatXz, FormatTar:
		return walkTarStream(rest, format, limits, visit)
	default:
		// Old-style (pre-POSIX) tar headers carry no "ustar" magic at all;
		// give archive/tar a chance to parse it rather than rejecting
		// outright on magic-sniff failure.
		return walkTarStream(rest, FormatTar, limits, visit)
	}
}
