// Package pipeline orchestrates a classification run as a sequence of
// steps: load the master files, drop URLs already processed, classify
// what remains, and summarize.
//
// Each step implements the Step interface and mutates the shared
// model.ParseRun. Steps run strictly in order; the classify step is
// the only one that touches the network, and it does so one URL at a
// time through the pacer.
package pipeline
