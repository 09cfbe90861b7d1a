package fetch

import "errors"

// ErrConnection marks a network-level fetch failure: DNS, dial, TLS, or
// a broken transfer. The errors file records these as "ConnectionError"
// lines, distinct from parse failures, so the sentinel is part of the
// package contract. Use errors.Is to test for it.
var ErrConnection = errors.New("connection failed")
