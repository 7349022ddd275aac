// Package display provides terminal output helpers for progress and warnings.
//
// Use ProgressIndicator for batch operations:
//
//	progress := display.NewProgressIndicator(os.Stdout, len(files))
//	progress.Start("Resizing")
//	for _, file := range files {
//	    progress.Step(file)
//	    // ... process file ...
//	}
//	progress.Complete("Resized 4 files")
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Target list is empty",
//	    Message:    "Nothing to compare in list.txt",
//	    Suggestion: "Check the path and try again",
//	}
//	warning.Display(os.Stderr)
//
// All functions accept io.Writer for testability.
package display
