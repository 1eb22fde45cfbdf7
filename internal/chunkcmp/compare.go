// Package chunkcmp implements the Chunk Comparator: the cheapest-first
// decision ladder for deciding whether two byte sources are identical —
// identity shortcut, size precheck, three-offset quick check, then a
// sequential chunked full scan.
package chunkcmp

import (
	"bytes"
	"context"
	"io"
)

// Source is the minimal read surface the comparator needs. Both
// internal/source.Handle and internal/httpsource.Source satisfy it.
type Source interface {
	io.ReaderAt
	Size() int64
}

// IdentitySource is implemented by sources that can prove same-content
// without reading any bytes (e.g. local files via device+inode).
type IdentitySource interface {
	Source
	Identity() (id string, ok bool)
}

// Equal reports whether a and b hold identical bytes, short-circuiting
// wherever it safely can. chunkSize bounds memory use during the full
// scan and is also the quick-check probe window; quickCheck and
// sizePrecheck toggle the cheaper stages.
func Equal(ctx context.Context, a, b Source, chunkSize int, sizePrecheck, quickCheck bool) (bool, error) {
	if ia, ok := a.(IdentitySource); ok {
		if ib, ok2 := b.(IdentitySource); ok2 {
			idA, okA := ia.Identity()
			idB, okB := ib.Identity()
			if okA && okB && idA == idB {
				return true, nil
			}
		}
	}

	sizeA, sizeB := a.Size(), b.Size()
	if sizePrecheck && sizeA != sizeB {
		return false, nil
	}
	if sizeA != sizeB {
		return false, nil // sizes always disqualify equality even when precheck is skipped
	}
	if sizeA == 0 {
		return true, nil
	}

	if quickCheck {
		equal, err := quickProbe(a, b, sizeA, chunkSize)
		if err != nil {
			return false, err
		}
		if !equal {
			return false, nil
		}
	}

	return fullScan(ctx, a, b, sizeA, chunkSize)
}

// quickProbe samples three windows — head, middle, tail — each sized at
// min(chunkSize, size) bytes, cheap enough to catch most mismatches
// without reading the whole source.
func quickProbe(a, b Source, size int64, chunkSize int) (bool, error) {
	if chunkSize <= 0 {
		chunkSize = 64 << 10
	}
	offsets := probeOffsets(size, chunkSize)
	for _, off := range offsets {
		n := chunkSize
		if remaining := size - off; remaining < int64(n) {
			n = int(remaining)
		}
		if n <= 0 {
			continue
		}
		bufA := make([]byte, n)
		bufB := make([]byte, n)
		if _, err := readFullAt(a, bufA, off); err != nil {
			return false, err
		}
		if _, err := readFullAt(b, bufB, off); err != nil {
			return false, err
		}
		if !bytes.Equal(bufA, bufB) {
			return false, nil
		}
	}
	return true, nil
}

// probeOffsets returns the three probe windows: start, middle, and a
// tail window of probeLen bytes that does not run past the end of a
// small source.
func probeOffsets(size int64, probeLen int) []int64 {
	mid := size / 2
	tail := size - int64(probeLen)
	if tail < 0 {
		tail = 0
	}
	return []int64{0, mid, tail}
}

// fullScan reads both sources chunk by chunk, comparing as it goes and
// stopping at the first mismatch.
func fullScan(ctx context.Context, a, b Source, size int64, chunkSize int) (bool, error) {
	if chunkSize <= 0 {
		chunkSize = 64 << 10
	}
	bufA := make([]byte, chunkSize)
	bufB := make([]byte, chunkSize)

	for off := int64(0); off < size; off += int64(chunkSize) {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		n := chunkSize
		if remaining := size - off; remaining < int64(n) {
			n = int(remaining)
		}
		na, err := readFullAt(a, bufA[:n], off)
		if err != nil {
			return false, err
		}
		nb, err := readFullAt(b, bufB[:n], off)
		if err != nil {
			return false, err
		}
		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
	}
	return true, nil
}

// readFullAt reads exactly len(buf) bytes at off, treating io.EOF as an
// error here since both sources are expected to be exactly `size` long
// by the time this is called.
func readFullAt(s Source, buf []byte, off int64) (int, error) {
	n, err := s.ReadAt(buf, off)
	if err != nil && err != io.EOF {
		return n, err
	}
	if n < len(buf) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}
