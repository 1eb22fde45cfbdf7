package archive

import (
	"archive/zip"
	"fmt"
	"io"
)

func walkZip(ra io.ReaderAt, size int64, limits Limits, visit VisitFunc) error {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}

	var budget int64
	var budgetPtr *int64
	if limits.MaxDecompressedSize > 0 {
		budget = limits.MaxDecompressedSize
		budgetPtr = &budget
	}

	if limits.MaxEntries > 0 && len(zr.File) > limits.MaxEntries {
		return &BombError{Entry: "", Reason: "entry count limit exceeded"}
	}

	for _, f := range zr.File {
		name, ok := NormalizeEntryName(f.Name, limits.MaxEntryNameLength)
		if !ok {
			continue
		}
		if f.FileInfo().IsDir() {
			if err := visit(Entry{Name: name, IsDir: true}, nil); err != nil {
				return err
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFormat, name, err)
		}
		compressed := int64(f.CompressedSize64)
		bounded := newBoundedReader(rc, name, budgetPtr, func() int64 { return compressed }, limits.MaxCompressionRatio)
		err = visit(Entry{Name: name, Size: int64(f.UncompressedSize64)}, bounded)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
