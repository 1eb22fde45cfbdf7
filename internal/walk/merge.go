package walk

import "strings"

// MergeKind classifies a merged record from two sorted entry lists.
type MergeKind int

const (
	Both MergeKind = iota
	LeftOnly
	RightOnly
)

// Record is one merged row: a relative path present on the left, the
// right, or both, with each side's entry when present.
type Record struct {
	RelPath string
	Kind    MergeKind
	Left    *Entry
	Right   *Entry
}

// Merge performs a lockstep merge of two path-sorted entry slices,
// mirroring how a merge-join walks two sorted streams: advance whichever
// side is lexicographically behind, emit Both when both heads match.
func Merge(left, right []Entry) []Record {
	records := make([]Record, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		l, r := &left[i], &right[j]
		switch {
		case l.RelPath == r.RelPath:
			records = append(records, Record{RelPath: l.RelPath, Kind: Both, Left: l, Right: r})
			i++
			j++
		case l.RelPath < r.RelPath:
			records = append(records, Record{RelPath: l.RelPath, Kind: LeftOnly, Left: l})
			i++
		default:
			records = append(records, Record{RelPath: r.RelPath, Kind: RightOnly, Right: r})
			j++
		}
	}
	for ; i < len(left); i++ {
		records = append(records, Record{RelPath: left[i].RelPath, Kind: LeftOnly, Left: &left[i]})
	}
	for ; j < len(right); j++ {
		records = append(records, Record{RelPath: right[j].RelPath, Kind: RightOnly, Right: &right[j]})
	}
	return records
}

// Tree lists and merges two directory sides, surfacing each side's
// localized listing failures keyed by relative path.
func Tree(leftDir, rightDir string, followSymlinks bool) ([]Record, map[string]error, error) {
	leftSide, err := OpenSide(leftDir)
	if err != nil {
		return nil, nil, err
	}
	defer leftSide.Close()

	rightSide, err := OpenSide(rightDir)
	if err != nil {
		return nil, nil, err
	}
	defer rightSide.Close()

	leftEntries, leftErrs, err := leftSide.list(followSymlinks)
	if err != nil {
		return nil, nil, err
	}
	rightEntries, rightErrs, err := rightSide.list(followSymlinks)
	if err != nil {
		return nil, nil, err
	}

	errs := make(map[string]error, len(leftErrs)+len(rightErrs))
	for p, e := range leftErrs {
		errs[p] = e
	}
	for p, e := range rightErrs {
		errs[p] = e
	}

	// A subdirectory that failed to list on one side must not surface its
	// contents as OnlyLeft/OnlyRight from the side that succeeded — its
	// contents are enumerated on neither side, only reflected in errs.
	// The failing side's own entry for that directory is dropped too.
	leftEntries = excludeUnder(leftEntries, errs)
	rightEntries = excludeUnder(rightEntries, errs)

	return Merge(leftEntries, rightEntries), errs, nil
}

// excludeUnder drops every entry whose RelPath is, or falls under, one of
// failedDirs — the localized subdirectory listing failures of either side.
func excludeUnder(entries []Entry, failedDirs map[string]error) []Entry {
	if len(failedDirs) == 0 {
		return entries
	}
	out := entries[:0]
	for _, e := range entries {
		if underAny(e.RelPath, failedDirs) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func underAny(relPath string, failedDirs map[string]error) bool {
	for dir := range failedDirs {
		if relPath == dir || strings.HasPrefix(relPath, dir+"/") {
			return true
		}
	}
	return false
}
