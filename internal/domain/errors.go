package domain

import "errors"

// ErrBadInput covers malformed board strings, wrong-length digit
// arrays, and out-of-range options. It is the only error class surfaced
// to callers; every other failure is encoded in result values.
var ErrBadInput = errors.New("bad input")
