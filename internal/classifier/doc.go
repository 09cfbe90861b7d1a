// Package classifier decides whether a morgue file records a winning
// run and, for winners, extracts the character build.
//
// Classification runs in five stages:
//  1. Unwrap: if the text is an HTML-wrapped morgue, slice out the
//     embedded plain-text log between the version header and </pre>.
//  2. Structural validation over the first 20 lines: minimum length,
//     version header, and the victory phrase. A missing victory phrase
//     is a Loser outcome, never a parse error.
//  3. Version extraction from the header line, truncated to major.minor.
//  4. Field scan for the rune count, deity, and build-description lines.
//  5. Build resolution through the lookup tables, accepting exactly the
//     two spellings real morgues use: a four-letter code ("MiBe") or a
//     full phrase ("Minotaur Berserker").
//
// The result is a tagged model.Outcome: Winner, Loser, or ParseError.
// Stages 4 and 5 intentionally mirror the quirks of the morgue format
// across game versions; do not unify the two build spellings into a
// single parser.
package classifier
