// Package model defines the shared data structures for morguelib:
// character build records, classification outcomes, the winners-file
// line codec, and the accumulator for a single parse run.
//
// The types here carry no behavior beyond formatting and parsing so
// that every other package can depend on them without import cycles.
package model
