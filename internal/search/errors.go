package search

import "errors"

// ErrBadCriteria is returned when a user-supplied search argument
// cannot be resolved to a species, background, god, or range.
var ErrBadCriteria = errors.New("invalid search criteria")
