package model

import "time"

// ParseRun accumulates the state of one classification run over a set of
// master files. Pipeline steps fill it in sequence: loading appends to
// URLs, dedup filtering fills Pending, and classification updates the
// counters as each URL reaches its terminal outcome.
type ParseRun struct {
	// MasterFiles are the input files listing morgue URLs or paths.
	MasterFiles []string

	// URLs is every URL read from the master files, in input order.
	URLs []string

	// Pending is the subset of URLs not already present in the
	// deduplication index.
	Pending []string

	// Started is when the run began. Used for the output file timestamp
	// suffix, so all category files of one run share it.
	Started time.Time

	// Winners counts morgues classified as winning runs.
	Winners int

	// Losers counts morgues classified as non-winning runs.
	Losers int

	// ParseErrors counts morgues rejected for structural reasons.
	ParseErrors int

	// ConnectionErrors counts URLs whose fetch failed at the network level.
	ConnectionErrors int

	// UnknownErrors counts failures that fit no other category.
	UnknownErrors int

	// Skipped counts URLs dropped by the deduplication index.
	Skipped int

	// PerformedSteps records the pipeline steps that ran, in order.
	PerformedSteps []string
}

// NewParseRun creates a ParseRun for the given master files, stamped
// with the current time.
func NewParseRun(masterFiles []string) *ParseRun {
	return &ParseRun{
		MasterFiles: masterFiles,
		Started:     time.Now(),
	}
}

// Processed returns the number of URLs that reached a terminal outcome.
func (r *ParseRun) Processed() int {
	return r.Winners + r.Losers + r.ParseErrors + r.ConnectionErrors + r.UnknownErrors
}
