// Package logtail reads the end of the Concepta client log.
//
// # Overview
//
// The client writes zap JSON lines to a rotated file (see package logging).
// Read extracts the last N lines with a ring buffer so memory stays
// O(N) regardless of file size; ReadEntries additionally decodes each line
// into an Entry with timestamp, level, message and the remaining fields.
//
// Example usage:
//
//	entries, err := logtail.ReadEntries(cfg.LogFile, 50)
//	if err != nil {
//		return err
//	}
//	for _, e := range entries {
//		fmt.Println(e.Format())
//	}
//
// # Ring Buffer Algorithm
//
//  1. Allocate a ring of size maxLines
//  2. For each scanned line, store it at the write index and advance
//     modulo maxLines
//  3. When the ring filled up, unroll it starting at the write index so
//     lines come back in chronological order
//
// A non-positive maxLines returns the whole file. A missing file is not an
// error: a fresh install has not logged anything yet.
//
// Lines longer than 1 MiB fail the scan with an error.
package logtail
