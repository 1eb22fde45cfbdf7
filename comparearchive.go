package komparu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ashm-dev/komparu/internal/archive"
	"github.com/ashm-dev/komparu/internal/archivediff"
)

// CompareArchive compares the contents of two archives (tar, tar.gz,
// tar.bz2, tar.xz, or zip — detected by magic bytes, never by file
// extension) entry by entry. Archive format on each side is independent:
// a tar.gz can be compared against a zip.
func CompareArchive(ctx context.Context, a, b any, opts ...Option) (*DirResult, error) {
	options, err := buildOptions(opts...)
	if err != nil {
		return nil, err
	}
	if options.WallClockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.WallClockTimeout)
		defer cancel()
	}

	srcA, closeA, err := archiveSource(ctx, asSource(a), options)
	if err != nil {
		return nil, openError("source_a", err)
	}
	defer closeA()

	srcB, closeB, err := archiveSource(ctx, asSource(b), options)
	if err != nil {
		return nil, openError("source_b", err)
	}
	defer closeB()

	limits := archive.Limits{
		MaxDecompressedSize: options.MaxDecompressedSize,
		MaxCompressionRatio:  options.MaxCompressionRatio,
		MaxEntries:           options.MaxEntries,
		MaxEntryNameLength:   options.MaxEntryNameLength,
	}

	raw, err := archivediff.Compare(ctx, srcA, srcB, limits, options.HashCompare)
	if err != nil {
		return nil, wrapArchiveError(err)
	}

	return fromArchiveDiff(raw), nil
}

func wrapArchiveError(err error) error {
	var bomb *archive.BombError
	if ok := asBombError(err, &bomb); ok {
		return ErrArchiveBomb
	}
	if errors.Is(err, archive.ErrFormat) {
		return wrapSide("source_a/source_b", fmt.Errorf("%w: %v", ErrArchiveError, err))
	}
	return readError("source_a/source_b", err)
}

func asBombError(err error, target **archive.BombError) bool {
	if be, ok := err.(*archive.BombError); ok {
		*target = be
		return true
	}
	return false
}

func fromArchiveDiff(raw *archivediff.Result) *DirResult {
	result := newDirResult()
	for p, reason := range raw.Diff {
		result.Diff[p] = fromArchiveDiffReason(reason)
	}
	for p := range raw.OnlyLeft {
		result.OnlyLeft[p] = struct{}{}
	}
	for p := range raw.OnlyRight {
		result.OnlyRight[p] = struct{}{}
	}
	for p := range raw.Errors {
		result.Errors[p] = struct{}{}
	}
	result.recompute()
	return result
}

func fromArchiveDiffReason(r archivediff.Reason) DiffReason {
	switch r {
	case archivediff.SizeMismatch:
		return SizeMismatch
	case archivediff.TypeMismatch:
		return TypeMismatch
	case archivediff.ReadError:
		return ReadError
	default:
		return ContentMismatch
	}
}

// archiveSource opens s and wraps it as an archivediff.Source: a fresh
// io.Reader per Open call plus the io.ReaderAt+size pair zip needs for
// its central directory.
func archiveSource(ctx context.Context, s Source, options *CompareOptions) (archivediff.Source, func() error, error) {
	handle, closeFn, err := openHandle(ctx, s, options)
	if err != nil {
		return archivediff.Source{}, nil, err
	}
	size := handle.Size()
	return archivediff.Source{
		Open: func() (io.Reader, error) {
			return io.NewSectionReader(handle, 0, size), nil
		},
		ReaderAt: handle,
		Size:     size,
	}, closeFn, nil
}
