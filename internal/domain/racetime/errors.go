package racetime

import "errors"

// ErrInvalidTime is returned for any value that is not a recognizable run time.
var ErrInvalidTime = errors.New("invalid time format")
