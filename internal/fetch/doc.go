// Package fetch reads morgue content from the network and from local
// files.
//
// Network reads go through a single HTTP client with a per-request
// User-Agent chosen from a rotation list. Transport-level failures are
// wrapped with ErrConnection so callers can file them separately from
// parse failures; HTTP error pages are returned as ordinary text and
// left for the classifier to reject.
//
// Local reads transparently decompress .gz and .bz2 files, both for
// individual morgues and for master files listing morgue URLs.
package fetch
