// Package search answers questions about recorded wins: which games
// match a set of build criteria, and which builds win most often.
//
// The winners files written by the parse command are the source of
// truth. A Searcher loads every winners file in the data directory,
// including compressed ones left by earlier runs, and filters the
// entries in memory. Criteria accept the same spellings a player would
// use: full names ("minotaur"), codes ("Mi"), and common deity
// shorthand ("oka").
package search
