//go:build !unix

package source

import "io/fs"

// fileIdentity has no portable device+inode equivalent off Unix; callers
// fall back to the size+quick-check+full-scan path.
func fileIdentity(info fs.FileInfo) (string, bool) {
	return "", false
}

func isRegular(info fs.FileInfo) bool {
	return info.Mode().IsRegular()
}
