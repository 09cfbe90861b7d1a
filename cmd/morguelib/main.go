// Package main provides the entry point for the morguelib CLI.
//
// morguelib collects Dungeon Crawl Stone Soup morgue files from public
// game servers, classifies each game as a win or a loss, and records
// the character builds behind the wins.
//
// Usage:
//
//	morguelib spider <seed-url>
//	morguelib parse <master-file>
//	morguelib search --species minotaur
//
// See --help for all available options.
package main

// main is the entry point for morguelib.
func main() {
	Execute()
}
