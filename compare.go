package komparu

import (
	"context"
	"fmt"

	"github.com/ashm-dev/komparu/internal/chunkcmp"
)

// Compare reports whether a and b hold identical bytes.
//
// a and b may each be a local path, an http(s) URL, a []byte buffer, or
// a [Source] built with [NewLocalSource], [NewRemoteSource], or
// [NewMemorySource] for finer control (per-source headers, timeouts,
// proxy). Validation errors (see [CompareOptions]) are returned before
// any I/O.
func Compare(ctx context.Context, a, b any, opts ...Option) (bool, error) {
	options, err := buildOptions(opts...)
	if err != nil {
		return false, err
	}
	return compareSources(ctx, asSource(a), asSource(b), options)
}

func compareSources(ctx context.Context, a, b Source, options *CompareOptions) (bool, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && options.WallClockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.WallClockTimeout)
		defer cancel()
	}

	handleA, closeA, err := openHandle(ctx, a, options)
	if err != nil {
		return false, openError("source_a", err)
	}
	defer closeA()

	handleB, closeB, err := openHandle(ctx, b, options)
	if err != nil {
		return false, openError("source_b", err)
	}
	defer closeB()

	equal, err := chunkcmp.Equal(ctx, handleA, handleB, options.ChunkSize, options.SizePrecheck, options.QuickCheck)
	if err != nil {
		if ctx.Err() != nil {
			return false, fmt.Errorf("%w: %v", ErrComparisonTimeout, ctx.Err())
		}
		return false, readError("source_a/source_b", err)
	}
	return equal, nil
}
