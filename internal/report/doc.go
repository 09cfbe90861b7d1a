// Package report owns every file morguelib writes: the append-only
// per-category output files (winners, losers, parser errors, discovered
// URLs), the compressed archive of winning morgue text, and the
// text/markdown/JSON writers for search results.
//
// Category files are opened in append mode for each write and closed
// again immediately, so a killed process loses at most the in-flight
// line. All files of one run share a timestamp suffix taken from the
// run start.
package report
