package segment

import "errors"

// Reasons a segment is rejected.
var (
	ErrMissingColumns = errors.New("segment lacks required columns")
	ErrNoGenderRows   = errors.New("segment has no rows of a recognized gender")
)
