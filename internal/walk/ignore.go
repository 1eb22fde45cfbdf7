package walk

import (
	"strings"

	"github.com/gobwas/glob"
)

// IgnoreSet matches relative paths against a set of shell-style glob
// patterns, evaluated per path component so "build" matches "build" and
// "src/build" alike without requiring a leading "**/".
type IgnoreSet struct {
	globs []glob.Glob
}

// NewIgnoreSet compiles patterns once, up front, so matching during the
// walk never pays compilation cost per entry.
func NewIgnoreSet(patterns []string) (*IgnoreSet, error) {
	set := &IgnoreSet{globs: make([]glob.Glob, 0, len(patterns))}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, err
		}
		set.globs = append(set.globs, g)
	}
	return set, nil
}

// Match reports whether relPath, or any of its path components, matches
// any configured pattern.
func (s *IgnoreSet) Match(relPath string) bool {
	if s == nil || len(s.globs) == 0 {
		return false
	}
	for _, g := range s.globs {
		if g.Match(relPath) {
			return true
		}
	}
	for _, component := range strings.Split(relPath, "/") {
		for _, g := range s.globs {
			if g.Match(component) {
				return true
			}
		}
	}
	return false
}

// Filter drops any record whose path matches the ignore set.
func Filter(records []Record, set *IgnoreSet) []Record {
	if set == nil || len(set.globs) == 0 {
		return records
	}
	out := records[:0]
	for _, r := range records {
		if !set.Match(r.RelPath) {
			out = append(out, r)
		}
	}
	return out
}
