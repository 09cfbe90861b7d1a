// Package pacer delivers a fixed collection of URLs one at a time with
// an enforced minimum interval between deliveries.
//
// The pacer is the only place in morguelib where forward progress is
// deliberately delayed. The tool is a polite, low-rate client of
// volunteer-run community servers: the recommended minimum interval is
// a minute or more, and nothing in this module fetches in parallel.
//
// A Source is single-pass and not restartable; create a new one for
// each batch.
package pacer
