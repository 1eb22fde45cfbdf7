package komparu

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors returned by the comparison engine. Every raised error
// wraps one of these so callers can use errors.Is regardless of which
// side or entry triggered it.
var (
	// ErrSourceNotFound is raised when a local path or URL does not exist.
	ErrSourceNotFound = errors.New("komparu: source not found")

	// ErrSourceReadError is raised on I/O failure, TLS failure, SSRF
	// rejection, or an oversized/garbled range response.
	ErrSourceReadError = errors.New("komparu: source read error")

	// ErrArchiveError is raised for malformed archive headers or other
	// unrecoverable archive decode failures.
	ErrArchiveError = errors.New("komparu: archive error")

	// ErrArchiveBomb is a subtype of ErrArchiveError raised when a
	// decompression bomb limit is exceeded.
	ErrArchiveBomb = fmt.Errorf("%w: bomb limit exceeded", ErrArchiveError)

	// ErrComparisonTimeout is raised when a comparison exceeds its
	// wall-clock timeout.
	ErrComparisonTimeout = errors.New("komparu: comparison timed out")

	// ErrConfig is raised synchronously, before any I/O, for invalid
	// option values.
	ErrConfig = errors.New("komparu: invalid configuration")
)

// sideError attributes an error to one side of a two-source comparison,
// the way core/internal/file/reader.go attributes read failures to an
// entry path.
type sideError struct {
	side string
	err  error
}

func (e *sideError) Error() string {
	return fmt.Sprintf("%s: %v", e.side, e.err)
}

func (e *sideError) Unwrap() error {
	return e.err
}

// wrapSide wraps err, identifying which side of the comparison it came
// from ("source_a", "source_b", or an archive/entry path).
func wrapSide(side string, err error) error {
	if err == nil {
		return nil
	}
	return &sideError{side: side, err: err}
}

// readError wraps the cause as ErrSourceReadError, attributed to side.
func readError(side string, cause error) error {
	return wrapSide(side, fmt.Errorf("%w: %v", ErrSourceReadError, cause))
}

// notFoundError wraps the cause as ErrSourceNotFound, attributed to side.
func notFoundError(side string, cause error) error {
	return wrapSide(side, fmt.Errorf("%w: %v", ErrSourceNotFound, cause))
}

// openError classifies an openHandle failure: only a genuinely missing
// path or remote resource is ErrSourceNotFound. Everything else — a
// rejected symlink, a non-regular file (FIFO, socket, device),
// permission denied, a malformed response — is an ErrSourceReadError,
// since the source exists but couldn't be read as requested.
func openError(side string, cause error) error {
	if errors.Is(cause, fs.ErrNotExist) {
		return notFoundError(side, cause)
	}
	return readError(side, cause)
}
