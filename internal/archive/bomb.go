package archive

import (
	"fmt"
	"io"
)

// Limits bounds decompression to defend against archive bombs. Every
// field is opt-out-able by setting it to zero, and Walk applies exactly
// the Limits it is given: the safe defaults live in the options layer,
// so a zero-value Limits here means no limits at all.
type Limits struct {
	MaxDecompressedSize int64
	MaxCompressionRatio  int
	MaxEntries           int
	MaxEntryNameLength   int
}

// BombError reports which limit was exceeded and for which entry.
type BombError struct {
	Entry  string
	Reason string
}

func (e *BombError) Error() string {
	return fmt.Sprintf("archive bomb: %s: %s", e.Entry, e.Reason)
}

// boundedReader enforces MaxDecompressedSize (cumulative, via budget) and
// MaxCompressionRatio (via compressed, a snapshot for zip entries or
// a live counter for a shared tar.gz/tar.bz2/tar.xz stream) while the
// caller streams an entry's decompressed content.
type boundedReader struct {
	r          io.Reader
	entry      string
	budget     *int64 // shared cumulative budget across the whole archive; nil disables
	compressed func() int64
	ratio      int
	read       int64
}

func newBoundedReader(r io.Reader, entry string, budget *int64, compressed func() int64, ratio int) *boundedReader {
	return &boundedReader{r: r, entry: entry, budget: budget, compressed: compressed, ratio: ratio}
}

func (b *boundedReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if n > 0 {
		b.read += int64(n)
		if b.budget != nil {
			*b.budget -= int64(n)
			if *b.budget < 0 {
				return n, &BombError{Entry: b.entry, Reason: "cumulative decompressed size limit exceeded"}
			}
		}
		if b.ratio > 0 && b.compressed != nil {
			if c := b.compressed(); c > 0 && b.read > c*int64(b.ratio) {
				return n, &BombError{Entry: b.entry, Reason: "compression ratio limit exceeded"}
			}
		}
	}
	return n, err
}

// countingReader tracks cumulative bytes read from the compressed input
// stream, giving the tar pipeline a live denominator for the
// compression-ratio check even though one compressed stream backs many
// tar entries.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReader) count() int64 { return c.n }
