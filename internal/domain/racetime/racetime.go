// Package racetime converts recorded middle and long distance run times into
// whole seconds.
//
// Two encodings are accepted. The colon form "m:ss" (full-width colons,
// primes and 分 also act as separators) and the decimal shorthand "m.ss",
// where the first two fractional digits after rounding to two places are
// seconds, so 3.5 reads as 3 min 50 s.
package racetime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	secondsPerMinute = 60
	// maxMinutes keeps minutes*60 inside an int32.
	maxMinutes = math.MaxInt32 / secondsPerMinute
)

var separators = strings.NewReplacer(
	"：", ":",
	"∶", ":",
	"﹕", ":",
	"′", ":",
	"'", ":",
	"’", ":",
	"‘", ":",
	"分", ":",
)

const secondMarks = "″\"”秒 \t"

// Seconds parses raw into total seconds.
func Seconds(raw string) (int, error) {
	s := normalize(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidTime)
	}

	switch strings.Count(s, ":") {
	case 0:
		return fromDecimal(s)
	case 1:
		return fromColon(s)
	default:
		return 0, fmt.Errorf("%w: %q has more than one separator", ErrInvalidTime, raw)
	}
}

func normalize(raw string) string {
	s := separators.Replace(strings.TrimSpace(raw))
	return strings.TrimRight(s, secondMarks)
}

func fromColon(s string) (int, error) {
	mPart, sPart, _ := strings.Cut(s, ":")
	m, err := parseFinite(mPart)
	if err != nil {
		return 0, err
	}
	sec, err := parseFinite(sPart)
	if err != nil {
		return 0, err
	}
	return combine(math.Trunc(m), math.Round(sec))
}

func fromDecimal(s string) (int, error) {
	v, err := parseFinite(s)
	if err != nil {
		return 0, err
	}
	cents := math.Round(v * 100)
	m := math.Floor(cents / 100)
	return combine(m, cents-m*100)
}

func combine(minutes, seconds float64) (int, error) {
	if !(minutes >= 0 && minutes <= maxMinutes) || !(seconds >= 0 && seconds < secondsPerMinute) {
		return 0, fmt.Errorf("%w: %v min %v s", ErrInvalidTime, minutes, seconds)
	}
	return int(minutes)*secondsPerMinute + int(seconds), nil
}

// parseFinite accepts unsigned decimal numbers only. Signs and the hex
// float form strconv also understands are rejected.
func parseFinite(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !Decimal(s) || strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidTime, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidTime, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidTime, s)
	}
	return v, nil
}

// Decimal reports whether s is written in plain decimal notation, that is
// without the 0x prefix of a hex float.
func Decimal(s string) bool {
	s = strings.TrimLeft(strings.TrimSpace(s), "+-")
	return !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X")
}
