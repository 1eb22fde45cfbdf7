package komparu

import (
	"context"
	"errors"

	"github.com/ashm-dev/komparu/internal/pool"
)

// errMismatch signals "sources differ" through the pool's error-return
// channel without being a real failure; CompareAll unwraps it back to
// (false, nil).
var errMismatch = errors.New("komparu: sources differ")

// CompareAll reports whether every source is byte-identical to
// sources[0]. Comparisons run through the same fixed worker pool as
// CompareDir/CompareMany/CompareDirURLs, so WithMaxWorkers(1) forces
// strictly sequential, deterministic execution; the early-abort
// aggregation mode stops dispatching new work as soon as one pair
// differs or fails.
func CompareAll(ctx context.Context, sources []any, opts ...Option) (bool, error) {
	options, err := buildOptions(opts...)
	if err != nil {
		return false, err
	}
	if len(sources) < 2 {
		return true, nil
	}

	anchor := asSource(sources[0])
	rest := sources[1:]

	p := pool.New(options.MaxWorkers)

	err = p.RunUntilError(len(rest), func(i int) error {
		s := asSource(rest[i])
		equal, err := compareSources(ctx, anchor, s, options)
		if err != nil {
			return err
		}
		if !equal {
			return errMismatch
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errMismatch) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
