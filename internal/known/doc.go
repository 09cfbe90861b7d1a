// Package known answers whether a morgue URL has been seen by a
// previous run.
//
// The index is rebuilt from the append-only output files themselves:
// every winners, losers, errors, and discovered-URL file starts each
// line with the URL it concerns, so scanning the first field of every
// line under the configured prefixes recovers the complete set of
// previously-processed URLs. Only a hash of each URL is kept in memory,
// keeping the index small across years of accumulated output.
package known
