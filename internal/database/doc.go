// Package database provides SQLite-based storage for the winner
// catalog.
//
// The catalog mirrors the winners output files in a queryable form:
// every winning game is one row keyed by its morgue URL, with the
// build fields broken out into columns so searches do not need to
// rescan text files.
//
// SQLite via modernc.org/sqlite keeps the catalog a single file and
// the binary CGO-free.
package database
