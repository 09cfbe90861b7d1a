package model

import "errors"

// ErrMalformedLine is returned by ParseWinnerLine when a winners-file
// line does not match the "<url>  <build>,<runes>,<version>" shape.
// Callers typically skip the offending line rather than abort.
var ErrMalformedLine = errors.New("malformed winners line")
