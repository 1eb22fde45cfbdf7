package archivediff

import (
	"errors"
	"fmt"
	"io"

	"github.com/ashm-dev/komparu/internal/archive"
)

// collect walks src once, building a record per normalized entry name.
// In buffered mode each regular file's decompressed content is held in
// memory (O(total decompressed) space); in hashed mode only a 128-bit
// fingerprint is kept (O(entry count) space). Entries that fail to read
// land in failed instead of entries, the same localized-error shape the
// directory walker uses for subdirectory listing failures; a bomb-limit
// breach while reading an entry aborts the walk and is returned instead.
func collect(src Source, limits archive.Limits, hashCompare bool) (entries map[string]record, failed map[string]struct{}, err error) {
	entries = make(map[string]record)
	failed = make(map[string]struct{})

	r, openErr := src.Open()
	if openErr != nil {
		return nil, nil, fmt.Errorf("open archive: %w", openErr)
	}
	if closer, ok := r.(io.Closer); ok {
		defer closer.Close()
	}

	walkErr := archive.Walk(r, src.ReaderAt, src.Size, limits, func(entry archive.Entry, content io.Reader) error {
		if entry.IsDir {
			entries[entry.Name] = record{isDir: true}
			return nil
		}

		if hashCompare {
			digest, err := fingerprint(content)
			if err != nil {
				var bomb *archive.BombError
				if errors.As(err, &bomb) {
					return err
				}
				failed[entry.Name] = struct{}{}
				return nil
			}
			entries[entry.Name] = record{size: entry.Size, digest: digest, hashed: true}
			return nil
		}

		buf, err := io.ReadAll(content)
		if err != nil {
			var bomb *archive.BombError
			if errors.As(err, &bomb) {
				return err
			}
			failed[entry.Name] = struct{}{}
			return nil
		}
		entries[entry.Name] = record{size: entry.Size, content: buf}
		return nil
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}

	return entries, failed, nil
}
