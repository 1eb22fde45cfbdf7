// Package komparu answers one question as fast as the kernel permits:
// are these two sources byte-identical?
//
// Sources may be local files, remote HTTP(S) URLs, archive members, or a
// mix of the three. For single sources, [Compare] reports a boolean. For
// directory trees and archives, [CompareDir] and [CompareArchive] report
// a structured [DirResult]: which entries differ, which are left-only or
// right-only, and which caused I/O errors.
//
// # Quick start
//
//	equal, err := komparu.Compare(ctx, "a.bin", "b.bin")
//
//	result, err := komparu.CompareDir(ctx, "./left", "./right")
//	if !result.Equal {
//	    for path, reason := range result.Diff {
//	        fmt.Println(path, reason)
//	    }
//	}
//
// # Scope
//
// komparu does not diff contents, does not normalize files semantically,
// and does not cache across invocations. It reports; it does not
// synchronize or copy.
package komparu
