package komparu

import (
	"context"
	"fmt"

	"github.com/ashm-dev/komparu/internal/pool"
	"github.com/ashm-dev/komparu/internal/walk"
)

// CompareDirURLs compares a local directory tree against a map of
// relative path to remote URL, the mixed-source counterpart to
// CompareDir for the common "verify a deployed mirror" case.
func CompareDirURLs(ctx context.Context, localDir string, urls map[string]string, opts ...Option) (*DirResult, error) {
	options, err := buildOptions(opts...)
	if err != nil {
		return nil, err
	}
	if options.WallClockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.WallClockTimeout)
		defer cancel()
	}

	entries, walkErrs, err := walk.List(localDir, options.FollowSymlinks)
	if err != nil {
		return nil, readError("source_a", err)
	}

	result := newDirResult()
	for p := range walkErrs {
		result.Errors[p] = struct{}{}
	}

	byPath := make(map[string]walk.Entry, len(entries))
	for _, e := range entries {
		byPath[e.RelPath] = e
	}

	paths := make([]string, 0, len(byPath)+len(urls))
	seen := make(map[string]struct{}, len(byPath)+len(urls))
	for p := range byPath {
		paths = append(paths, p)
		seen[p] = struct{}{}
	}
	for p := range urls {
		if _, ok := seen[p]; !ok {
			paths = append(paths, p)
		}
	}

	if len(options.IgnorePatterns) > 0 {
		ignoreSet, err := walk.NewIgnoreSet(options.IgnorePatterns)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		for p := range result.Errors {
			if ignoreSet.Match(p) {
				delete(result.Errors, p)
			}
		}
		filtered := paths[:0]
		for _, p := range paths {
			if !ignoreSet.Match(p) {
				filtered = append(filtered, p)
			}
		}
		paths = filtered
	}

	p := pool.New(options.MaxWorkers)
	var agg pool.Aggregator

	errs := p.RunCollectAll(len(paths), func(i int) error {
		relPath := paths[i]
		entry, hasLocal := byPath[relPath]
		url, hasRemote := urls[relPath]

		switch {
		case hasLocal && !hasRemote:
			agg.Merge(func() { result.OnlyLeft[relPath] = struct{}{} })
		case !hasLocal && hasRemote:
			agg.Merge(func() { result.OnlyRight[relPath] = struct{}{} })
		case entry.Kind == walk.KindDir:
			// Directories have no remote counterpart to fetch; presence on
			// both sides with no content to compare is treated as equal.
		default:
			equal, cerr := compareSources(ctx, NewLocalSource(entry.AbsPath), NewRemoteSource(url), options)
			agg.Merge(func() {
				switch {
				case cerr != nil:
					result.Errors[relPath] = struct{}{}
				case !equal:
					result.Diff[relPath] = ContentMismatch
				}
			})
		}
		return nil
	})
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}

	result.recompute()
	return result, nil
}
