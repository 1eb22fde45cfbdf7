// Package source implements the Source Handle abstraction: a uniform
// Size/ReadRange/Close surface over local files and in-memory buffers,
// the way meigma-blob's core/internal/file.ByteSource unifies file and
// range-fetched backends behind one Reader.
package source

import "io"

// Handle provides random access to one side of a comparison, regardless
// of what backs it.
type Handle interface {
	io.ReaderAt
	io.Closer

	// Size returns the total content length.
	Size() int64

	// Identity returns a comparable key for a same-underlying-content fast
	// path (e.g. device+inode for local files). ok is false when no such
	// shortcut is available (remote sources, in-memory buffers).
	Identity() (id string, ok bool)
}

// ReadRange reads exactly length bytes at offset, the way
// io.NewSectionReader+io.ReadFull would, returning io.ErrUnexpectedEOF if
// the handle is shorter than offset+length.
func ReadRange(h Handle, offset, length int64) ([]byte, error) {
	buf := make([]byte, length)
	n, err := h.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if int64(n) < length {
		return nil, io.ErrUnexpectedEOF
	}
	return buf, nil
}
