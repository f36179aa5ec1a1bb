package service

import "errors"

// Sentinel errors returned by the Service.
var (
	// ErrNoValidSegments is the only fatal run error: no segment of the sheet
	// passed validation, so no report is produced.
	ErrNoValidSegments = errors.New("no valid segments")
	ErrFileNotFound    = errors.New("report file not found")
)
