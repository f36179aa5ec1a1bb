package xlsx

import "errors"

// Sentinel errors for workbook I/O.
var (
	ErrOpenWorkbook  = errors.New("open workbook")
	ErrEmptyWorkbook = errors.New("workbook has no sheets")
	ErrWriteWorkbook = errors.New("write workbook")
)
