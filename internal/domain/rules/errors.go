package rules

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidBand = errors.New("invalid band")
	ErrLoadRules   = errors.New("load rules failed")
)
