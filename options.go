package komparu

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	defaultChunkSize           = 64 << 10 // 64 KiB
	maxChunkSize               = 1 << 30  // 1 GiB
	defaultHTTPTimeout         = 30 * time.Second
	defaultMaxDecompressedSize = 1 << 30 // 1 GiB
	defaultMaxCompressionRatio = 200
	defaultMaxArchiveEntries   = 100_000
	defaultMaxEntryNameLength  = 4096
	defaultMaxWorkers          = 256
	quickCheckProbeThreshold   = 64 // bytes
	defaultRetries             = 0
	defaultRetryBackoff        = 100 * time.Millisecond
)

// CompareOptions is the immutable configuration for a comparison call,
// built by applying [Option] values over the defaults. Once built it is
// never mutated — the same frozen-config-after-options pattern the
// teacher uses for its Blob/Client types.
type CompareOptions struct {
	ChunkSize     int
	SizePrecheck  bool
	QuickCheck    bool
	FollowSymlinks bool

	// HTTP
	Headers         map[string]string
	Timeout         time.Duration
	FollowRedirects bool
	VerifyTLS       bool
	Proxy           string
	AllowPrivate    bool
	Retries         int
	RetryBackoff    time.Duration

	// Archive bomb limits. Zero means "no limit" for all except
	// ChunkSize which always applies its own positive default.
	MaxDecompressedSize int64
	MaxCompressionRatio int
	MaxEntries           int
	MaxEntryNameLength   int
	HashCompare          bool

	// Concurrency
	MaxWorkers int // 0 = auto, 1 = sequential, up to 256

	// WallClockTimeout bounds the entire operation, independent of the
	// per-request HTTP timeout. Zero disables it.
	WallClockTimeout time.Duration

	// IgnorePatterns are shell-style globs evaluated against each path
	// component during a directory walk; matched entries are left out of
	// the comparison and appear in none of the four DirResult sets.
	IgnorePatterns []string

	// Logger receives structured diagnostics (subdirectory listing
	// failures, HTTP retry/fallback decisions). Nil disables logging.
	Logger *slog.Logger
}

// log returns Logger, falling back to a discard logger if unset.
func (o *CompareOptions) log() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Option configures a CompareOptions.
type Option func(*CompareOptions)

// WithChunkSize sets the chunk size used by the sequential scan and by
// each HTTP ranged GET. Must be positive and at most 1 GiB.
func WithChunkSize(n int) Option {
	return func(o *CompareOptions) { o.ChunkSize = n }
}

// WithSizePrecheck toggles comparing sizes before content (default: true).
func WithSizePrecheck(enabled bool) Option {
	return func(o *CompareOptions) { o.SizePrecheck = enabled }
}

// WithQuickCheck toggles the three-offset probe sample before the full
// scan (default: true).
func WithQuickCheck(enabled bool) Option {
	return func(o *CompareOptions) { o.QuickCheck = enabled }
}

// WithFollowSymlinks controls whether directory traversal follows
// symlinks or treats them as their own kind (default: false).
func WithFollowSymlinks(enabled bool) Option {
	return func(o *CompareOptions) { o.FollowSymlinks = enabled }
}

// WithHeaders sets global HTTP headers for remote sources. Per-source
// headers on a [Source] shadow these key-by-key.
func WithHeaders(headers map[string]string) Option {
	return func(o *CompareOptions) {
		if headers == nil {
			return
		}
		cp := make(map[string]string, len(headers))
		for k, v := range headers {
			cp[k] = v
		}
		o.Headers = cp
	}
}

// WithTimeout sets the per-HTTP-request timeout (default: 30s).
func WithTimeout(d time.Duration) Option {
	return func(o *CompareOptions) { o.Timeout = d }
}

// WithFollowRedirects toggles following HTTP redirects (default: true).
func WithFollowRedirects(enabled bool) Option {
	return func(o *CompareOptions) { o.FollowRedirects = enabled }
}

// WithVerifyTLS toggles TLS certificate verification (default: true).
func WithVerifyTLS(enabled bool) Option {
	return func(o *CompareOptions) { o.VerifyTLS = enabled }
}

// WithProxy sets a proxy URL (http://, https://, or socks5://) applied
// to all subsequent hops including ranged GETs.
func WithProxy(proxy string) Option {
	return func(o *CompareOptions) { o.Proxy = proxy }
}

// WithAllowPrivate disables the SSRF guard, permitting resolution to
// private, loopback, link-local, or multicast addresses (default: false).
func WithAllowPrivate(enabled bool) Option {
	return func(o *CompareOptions) { o.AllowPrivate = enabled }
}

// WithRetries sets the number of times a failed ranged GET is retried
// with exponential backoff and jitter before giving up (default: 0).
func WithRetries(n int) Option {
	return func(o *CompareOptions) { o.Retries = n }
}

// WithRetryBackoff sets the base backoff duration between retries
// (default: 100ms, doubled each attempt, plus jitter).
func WithRetryBackoff(d time.Duration) Option {
	return func(o *CompareOptions) { o.RetryBackoff = d }
}

// WithMaxDecompressedSize caps cumulative decompressed bytes read from an
// archive (default: 1 GiB). Zero disables the limit.
func WithMaxDecompressedSize(n int64) Option {
	return func(o *CompareOptions) { o.MaxDecompressedSize = n }
}

// WithMaxCompressionRatio caps decompressed/compressed ratio per entry
// (default: 200). Zero disables the limit.
func WithMaxCompressionRatio(n int) Option {
	return func(o *CompareOptions) { o.MaxCompressionRatio = n }
}

// WithMaxEntries caps the number of archive entries (default: 100,000).
// Zero disables the limit.
func WithMaxEntries(n int) Option {
	return func(o *CompareOptions) { o.MaxEntries = n }
}

// WithMaxEntryNameLength caps archive entry name length, measured on the
// name as stored in the archive before normalization (default: 4096).
// Zero disables the limit.
func WithMaxEntryNameLength(n int) Option {
	return func(o *CompareOptions) { o.MaxEntryNameLength = n }
}

// WithHashCompare switches archive comparison from buffered (store
// decompressed bytes) to hashed (stream a 128-bit fingerprint per
// entry), trading O(total decompressed) memory for O(entry count).
func WithHashCompare(enabled bool) Option {
	return func(o *CompareOptions) { o.HashCompare = enabled }
}

// WithMaxWorkers sets the worker pool size (0 = auto, 1 = sequential
// inline execution, up to 256).
func WithMaxWorkers(n int) Option {
	return func(o *CompareOptions) { o.MaxWorkers = n }
}

// WithWallClockTimeout bounds the entire comparison, independent of the
// per-request HTTP timeout. Zero (the default) disables it.
func WithWallClockTimeout(d time.Duration) Option {
	return func(o *CompareOptions) { o.WallClockTimeout = d }
}

// WithIgnorePatterns sets shell-style globs evaluated against each path
// component of a directory walk.
func WithIgnorePatterns(patterns ...string) Option {
	return func(o *CompareOptions) { o.IgnorePatterns = patterns }
}

// WithLogger sets the logger for diagnostics emitted during a
// comparison. If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(o *CompareOptions) { o.Logger = logger }
}

// defaultOptions returns the CompareOptions built from defaults alone.
func defaultOptions() *CompareOptions {
	return &CompareOptions{
		ChunkSize:            defaultChunkSize,
		SizePrecheck:         true,
		QuickCheck:           true,
		FollowSymlinks:       false,
		Timeout:              defaultHTTPTimeout,
		FollowRedirects:      true,
		VerifyTLS:            true,
		Retries:              defaultRetries,
		RetryBackoff:         defaultRetryBackoff,
		MaxDecompressedSize:  defaultMaxDecompressedSize,
		MaxCompressionRatio:  defaultMaxCompressionRatio,
		MaxEntries:           defaultMaxArchiveEntries,
		MaxEntryNameLength:   defaultMaxEntryNameLength,
		MaxWorkers:           0,
	}
}

// buildOptions applies opts over the defaults and validates the result.
func buildOptions(opts ...Option) (*CompareOptions, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// validate enforces the value-error rules from spec §6: non-positive
// chunk_size, chunk_size > 1 GiB, negative max_workers, max_workers > 256,
// non-positive timeout are all raised synchronously before any I/O.
// Source paths are not checked here.
func (o *CompareOptions) validate() error {
	if o.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrConfig, o.ChunkSize)
	}
	if o.ChunkSize > maxChunkSize {
		return fmt.Errorf("%w: chunk_size %d exceeds 1 GiB limit", ErrConfig, o.ChunkSize)
	}
	if o.MaxWorkers < 0 {
		return fmt.Errorf("%w: max_workers must be >= 0, got %d", ErrConfig, o.MaxWorkers)
	}
	if o.MaxWorkers > defaultMaxWorkers {
		return fmt.Errorf("%w: max_workers %d exceeds limit of %d", ErrConfig, o.MaxWorkers, defaultMaxWorkers)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrConfig, o.Timeout)
	}
	return nil
}
