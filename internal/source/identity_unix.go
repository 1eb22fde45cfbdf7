//go:build unix

package source

import (
	"fmt"
	"io/fs"
	"syscall"
)

// fileIdentity returns a device+inode key, the cheapest possible proof
// that two paths name the same underlying content without reading a
// single byte.
func fileIdentity(info fs.FileInfo) (string, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%d:%d", stat.Dev, stat.Ino), true
}

// isRegular reports whether info names a plain file, rejecting FIFOs,
// sockets, and block/char devices explicitly rather than letting them
// silently behave like regular files under ReadAt.
func isRegular(info fs.FileInfo) bool {
	return info.Mode().IsRegular()
}
