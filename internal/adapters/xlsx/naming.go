package xlsx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

const (
	// ReportTag appears in every report file name and drives Cleanup.
	ReportTag   = "评分结果"
	totalPrefix = "总表"
	extension   = ".xlsx"
	stampLayout = "20060102_150405"
)

// SafeName replaces every rune that is not a letter, digit, '_' or '-' with '_'.
func SafeName(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, s)
}

// TotalName is the file name of the combined report written at ts.
func TotalName(ts time.Time) string {
	return totalPrefix + "_" + ReportTag + "_" + ts.Format(stampLayout) + extension
}

// ClassName is the file name of the report for one class written at ts.
func ClassName(class string, ts time.Time) string {
	return SafeName(class) + "_" + ReportTag + "_" + ts.Format(stampLayout) + extension
}

// Cleanup removes earlier report workbooks from dir and returns how many went.
// A missing directory is not an error.
func Cleanup(dir string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ReportTag+"*"+extension))
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("remove %s: %w", m, err)
		}
		removed++
	}
	return removed, nil
}

// unique returns name, or name with a numeric suffix when it is already
// taken on disk or by an earlier file of the same batch.
func unique(dir, name string, taken map[string]bool) string {
	base := strings.TrimSuffix(name, extension)
	candidate := name
	for i := 2; ; i++ {
		if !taken[candidate] {
			if _, err := os.Stat(filepath.Join(dir, candidate)); os.IsNotExist(err) {
				taken[candidate] = true
				return candidate
			}
		}
		candidate = fmt.Sprintf("%s_%d%s", base, i, extension)
	}
}
