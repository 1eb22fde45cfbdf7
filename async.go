package komparu

import (
	"context"
	"fmt"
	"sync/atomic"
)

// AsyncHandle is the Async Bridge's task handle: a background goroutine
// computes T, signals notifyFD once, and Result delivers the outcome
// exactly once.
type AsyncHandle[T any] struct {
	n        notifier
	resultCh chan asyncResult[T]
	consumed atomic.Bool
}

type asyncResult[T any] struct {
	value T
	err   error
}

// startAsync spawns fn on a background goroutine and returns a handle
// plus the file descriptor callers can poll (select/epoll/kqueue) to
// learn when Result will return without blocking.
func startAsync[T any](fn func() (T, error)) (*AsyncHandle[T], int, error) {
	n, err := newNotifier()
	if err != nil {
		return nil, -1, err
	}
	h := &AsyncHandle[T]{n: n, resultCh: make(chan asyncResult[T], 1)}

	go func() {
		value, err := fn()
		h.resultCh <- asyncResult[T]{value: value, err: err}
		_ = h.n.signal()
	}()

	return h, h.n.fd(), nil
}

// NotifyFD returns the file descriptor signaled on completion.
func (h *AsyncHandle[T]) NotifyFD() int {
	return h.n.fd()
}

// Result blocks until the background task completes (or ctx is done)
// and returns its outcome. It may be called exactly once; a second call
// returns an error rather than blocking forever on an empty channel.
func (h *AsyncHandle[T]) Result(ctx context.Context) (T, error) {
	var zero T
	if !h.consumed.CompareAndSwap(false, true) {
		return zero, fmt.Errorf("komparu: async result already consumed")
	}
	defer h.n.Close()

	select {
	case r := <-h.resultCh:
		return r.value, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// CompareStart begins Compare on a background goroutine.
func CompareStart(ctx context.Context, a, b any, opts ...Option) (*AsyncHandle[bool], int, error) {
	return startAsync(func() (bool, error) { return Compare(ctx, a, b, opts...) })
}

// CompareDirStart begins CompareDir on a background goroutine.
func CompareDirStart(ctx context.Context, leftDir, rightDir string, opts ...Option) (*AsyncHandle[*DirResult], int, error) {
	return startAsync(func() (*DirResult, error) { return CompareDir(ctx, leftDir, rightDir, opts...) })
}

// CompareArchiveStart begins CompareArchive on a background goroutine.
func CompareArchiveStart(ctx context.Context, a, b any, opts ...Option) (*AsyncHandle[*DirResult], int, error) {
	return startAsync(func() (*DirResult, error) { return CompareArchive(ctx, a, b, opts...) })
}

// CompareAllStart begins CompareAll on a background goroutine.
func CompareAllStart(ctx context.Context, sources []any, opts ...Option) (*AsyncHandle[bool], int, error) {
	return startAsync(func() (bool, error) { return CompareAll(ctx, sources, opts...) })
}

// CompareManyStart begins CompareMany on a background goroutine.
func CompareManyStart(ctx context.Context, sources []any, opts ...Option) (*AsyncHandle[*CompareResult], int, error) {
	return startAsync(func() (*CompareResult, error) { return CompareMany(ctx, sources, opts...) })
}

// CompareDirURLsStart begins CompareDirURLs on a background goroutine.
func CompareDirURLsStart(ctx context.Context, localDir string, urls map[string]string, opts ...Option) (*AsyncHandle[*DirResult], int, error) {
	return startAsync(func() (*DirResult, error) { return CompareDirURLs(ctx, localDir, urls, opts...) })
}
