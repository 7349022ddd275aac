// Package fileutil provides the directory scanning shared by the lister and
// the resizer.
//
// ScanDirectory walks a directory (top level only, or recursively) and
// returns the regular files it finds together with their size and
// modification time, sorted by path relative to the scanned root.
//
// Basic recursive scanning:
//
//	result, err := fileutil.ScanDirectory("/path/to/dir", fileutil.ScanOptions{
//	    Recursive: true,
//	})
//	if err != nil {
//	    return err
//	}
//	for _, entry := range result.Files {
//	    fmt.Println(entry.RelPath, entry.Size)
//	}
//
// Extension filtering is case-insensitive and accepts extensions with or
// without the leading dot:
//
//	result, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{
//	    Extensions: []string{"tga"},
//	})
//
// Errors on the root directory (missing, not a directory, unreadable) are
// fatal. Errors below the root, such as a subdirectory without read
// permission, are collected in ScanResult.Errors and the walk continues.
//
// Hidden directories (names starting with ".") are skipped unless
// IncludeHidden is set. Hidden files are always listed.
package fileutil
