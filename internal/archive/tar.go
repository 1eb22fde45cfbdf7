package archive

import (
	"archive/tar"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// ErrFormat wraps malformed-archive decode failures from any container.
var ErrFormat = errors.New("archive: malformed container")

func walkTarStream(r io.Reader, format Format, limits Limits, visit VisitFunc) error {
	counting := &countingReader{r: r}

	var dr io.Reader
	switch format {
	case FormatGzip:
		gz, err := gzip.NewReader(counting)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFormat, err)
		}
		defer gz.Close()
		dr = gz
	case FormatBzip2:
		dr = bzip2.NewReader(counting)
	case FormatXz:
		xr, err := xz.NewReader(counting)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFormat, err)
		}
		dr = xr
	default:
		dr = counting
	}

	var budget int64
	var budgetPtr *int64
	if limits.MaxDecompressedSize > 0 {
		budget = limits.MaxDecompressedSize
		budgetPtr = &budget
	}

	tr := tar.NewReader(dr)
	count := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFormat, err)
		}

		count++
		if limits.MaxEntries > 0 && count > limits.MaxEntries {
			return &BombError{Entry: hdr.Name, Reason: "entry count limit exceeded"}
		}

		name, ok := NormalizeEntryName(hdr.Name, limits.MaxEntryNameLength)
		if !ok {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := visit(Entry{Name: name, IsDir: true}, nil); err != nil {
				return err
			}
		case tar.TypeReg:
			bounded := newBoundedReader(tr, name, budgetPtr, counting.count, limits.MaxCompressionRatio)
			if err := visit(Entry{Name: name, Size: hdr.Size}, bounded); err != nil {
				return err
			}
		case tar.TypeSymlink, tar.TypeLink:
			// A symlink's (or hardlink's) comparable content is its link
			// target, not a file body — two archives with a same-named
			// link to different targets must not compare equal.
			link := hdr.Linkname
			if err := visit(Entry{Name: name, Size: int64(len(link))}, strings.NewReader(link)); err != nil {
				return err
			}
		default:
			// devices, fifos: not content-comparable, skipped the way a
			// byte-equality oracle has nothing to diff.
		}
	}
}
