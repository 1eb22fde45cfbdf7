package archive

import (
	"path"
	"strings"
)

// NormalizeEntryName sanitizes a raw archive member name. It strips a
// leading "./", collapses repeated slashes, and rejects names that
// escape the archive root, use an absolute path, or exceed maxLen. ok is
// false when the entry must be skipped rather than compared.
func NormalizeEntryName(raw string, maxLen int) (name string, ok bool) {
	if raw == "" {
		return "", false
	}
	if maxLen > 0 && len(raw) > maxLen {
		return "", false
	}

	if strings.Contains(raw, "\x00") {
		return "", false
	}

	cleaned := strings.TrimPrefix(raw, "./")
	isAbsolute := strings.HasPrefix(cleaned, "/")
	cleaned = path.Clean(cleaned)
	cleaned = strings.TrimPrefix(cleaned, "/")

	if isAbsolute || cleaned == "" || cleaned == "." {
		return "", false
	}
	// path.Clean resolves internal ".." against earlier components but
	// leaves any that walk above the root as a leading "../" — reject
	// those explicitly rather than silently reinterpreting them.
	for _, component := range strings.Split(cleaned, "/") {
		if component == ".." {
			return "", false
		}
	}
	return cleaned, true
}
