package archivediff

import (
	"hash/fnv"
	"io"
)

// fingerprint streams content through a 128-bit FNV-1a hash, giving
// hashed mode an O(entry count) memory footprint instead of buffering
// every decompressed byte.
func fingerprint(content io.Reader) ([16]byte, error) {
	h := fnv.New128a()
	if _, err := io.Copy(h, content); err != nil {
		var zero [16]byte
		return zero, err
	}
	var out [16]byte
	copy(out[:], h.Sum(nil))
	return out, nil
}
