package komparu

import (
	"context"
	"fmt"
	"os"

	"github.com/ashm-dev/komparu/internal/pool"
	"github.com/ashm-dev/komparu/internal/walk"
)

// CompareDir compares two directory trees entry by entry, reporting
// which paths differ, which exist on only one side, and which caused
// I/O errors. Subdirectory listing failures are localized to that
// subtree rather than aborting the whole walk.
func CompareDir(ctx context.Context, leftDir, rightDir string, opts ...Option) (*DirResult, error) {
	options, err := buildOptions(opts...)
	if err != nil {
		return nil, err
	}
	if options.WallClockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.WallClockTimeout)
		defer cancel()
	}

	records, walkErrs, err := walk.Tree(leftDir, rightDir, options.FollowSymlinks)
	if err != nil {
		return nil, readError("source_a/source_b", err)
	}

	var ignoreSet *walk.IgnoreSet
	if len(options.IgnorePatterns) > 0 {
		ignoreSet, err = walk.NewIgnoreSet(options.IgnorePatterns)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		records = walk.Filter(records, ignoreSet)
	}

	result := newDirResult()
	for p, werr := range walkErrs {
		if ignoreSet.Match(p) {
			continue
		}
		result.Errors[p] = struct{}{}
		options.log().Warn("subdirectory listing failed", "path", p, "error", werr)
	}

	p := pool.New(options.MaxWorkers)
	var agg pool.Aggregator

	errs := p.RunCollectAll(len(records), func(i int) error {
		rec := records[i]
		outcome, err := compareRecord(ctx, rec, options)
		agg.Merge(func() {
			applyOutcome(result, rec, outcome, err)
		})
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

// recordOutcome is the verdict for one Both-side record.
type recordOutcome int

const (
	outcomeEqual recordOutcome = iota
	outcomeContentMismatch
	outcomeSizeMismatch
)

func compareRecord(ctx context.Context, rec walk.Record, options *CompareOptions) (recordOutcome, error) {
	if rec.Kind != walk.Both {
		return outcomeEqual, nil
	}
	if rec.Left.Kind != rec.Right.Kind {
		return outcomeEqual, nil // applyOutcome reports TypeMismatch before consulting outcome
	}
	if rec.Left.Kind == walk.KindOther || rec.Right.Kind == walk.KindOther {
		return outcomeEqual, fmt.Errorf("unsupported file type")
	}
	if rec.Left.Kind == walk.KindDir {
		return outcomeEqual, nil
	}

	leftInfo, lerr := os.Stat(rec.Left.AbsPath)
	rightInfo, rerr := os.Stat(rec.Right.AbsPath)
	if lerr == nil && rerr == nil && leftInfo.Size() != rightInfo.Size() {
		return outcomeSizeMismatch, nil
	}

	equal, err := compareSources(ctx, NewLocalSource(rec.Left.AbsPath), NewLocalSource(rec.Right.AbsPath), options)
	if err != nil {
		return outcomeEqual, err
	}
	if equal {
		return outcomeEqual, nil
	}
	return outcomeContentMismatch, nil
}

func applyOutcome(result *DirResult, rec walk.Record, outcome recordOutcome, err error) {
	switch rec.Kind {
	case walk.LeftOnly:
		result.OnlyLeft[rec.RelPath] = struct{}{}
		return
	case walk.RightOnly:
		result.OnlyRight[rec.RelPath] = struct{}{}
		return
	}

	if err != nil {
		result.Errors[rec.RelPath] = struct{}{}
		return
	}
	if rec.Left.Kind != rec.Right.Kind {
		result.Diff[rec.RelPath] = TypeMismatch
		return
	}
	switch outcome {
	case outcomeContentMismatch:
		result.Diff[rec.RelPath] = ContentMismatch
	case outcomeSizeMismatch:
		result.Diff[rec.RelPath] = SizeMismatch
	}
}
