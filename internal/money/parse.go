// Package money parses the free-form amount strings found on onboarding forms.
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// ErrMalformed is returned when an amount string cannot be interpreted.
var ErrMalformed = errors.New("malformed amount")

// Unbounded is the upper bound given to open-ended amounts such as ">5,000,000".
const Unbounded int64 = 1 << 50

// RangeDash separates the two ends of a range. Forms use an en-dash; a plain
// hyphen is not accepted.
const RangeDash = "–"

// OverMillionIncome is the synthetic upper bound for the "more than 1,000,000" income band.
const OverMillionIncome int64 = 10_000_000

// Million is the threshold named by the over-million sentinel.
const Million int64 = 1_000_000

var (
	currencyStripper = strings.NewReplacer("HK$", "", "HKD", "", "$", "", ",", "")
	sentinelStripper = strings.NewReplacer(" ", "", "$", "")
	numberPattern    = regexp.MustCompile(`\d+(?:,\d{3})*`)
)

// Range is a closed interval of whole currency units. Lower never exceeds Upper.
type Range struct {
	Lower int64 `json:"lower" yaml:"lower"`
	Upper int64 `json:"upper" yaml:"upper"`
}

// Exact returns the range [n, n].
func Exact(n int64) Range {
	return Range{Lower: n, Upper: n}
}

func (r Range) String() string {
	if r.Lower == r.Upper {
		return strconv.FormatInt(r.Lower, 10)
	}
	return fmt.Sprintf("%d%s%d", r.Lower, RangeDash, r.Upper)
}

// Parse interprets an amount as a range. Recognised shapes, in order:
// "<N" gives [0, N-1], "A–B" gives [A, B], ">N" gives [N+1, Unbounded] and a
// bare integer gives [N, N]. Currency tokens and thousands separators are
// ignored, and full-width digits are folded to ASCII first.
func Parse(text string) (Range, error) {
	s := normalize(text)
	if s == "" {
		return Range{}, fmt.Errorf("%w: empty", ErrMalformed)
	}

	switch {
	case strings.HasPrefix(s, "<"):
		n, err := parseWhole(s[1:])
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q", ErrMalformed, text)
		}
		if n < 1 {
			return Range{}, fmt.Errorf("%w: %q has no values below it", ErrMalformed, text)
		}
		return Range{Lower: 0, Upper: n - 1}, nil

	case strings.Contains(s, RangeDash):
		parts := strings.Split(s, RangeDash)
		if len(parts) != 2 {
			return Range{}, fmt.Errorf("%w: %q", ErrMalformed, text)
		}
		lower, err := parseWhole(parts[0])
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q", ErrMalformed, text)
		}
		upper, err := parseWhole(parts[1])
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q", ErrMalformed, text)
		}
		if lower > upper {
			return Range{}, fmt.Errorf("%w: %q is inverted", ErrMalformed, text)
		}
		return Range{Lower: lower, Upper: upper}, nil

	case strings.HasPrefix(s, ">"):
		n, err := parseWhole(s[1:])
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q", ErrMalformed, text)
		}
		if n >= Unbounded {
			return Exact(Unbounded), nil
		}
		return Range{Lower: n + 1, Upper: Unbounded}, nil

	default:
		n, err := parseWhole(s)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q", ErrMalformed, text)
		}
		return Exact(n), nil
	}
}

// LargestNumber returns the largest number embedded anywhere in text, or zero
// when there is none. Numbers may use comma thousands separators.
func LargestNumber(text string) int64 {
	var largest int64
	for _, n := range numbers(text) {
		if n > largest {
			largest = n
		}
	}
	return largest
}

// ParseLargest reads narrative amounts such as "about 300,000 to 500,000 a year"
// as the exact range of the largest number found. Text without digits is malformed.
func ParseLargest(text string) (Range, error) {
	found := numbers(text)
	if len(found) == 0 {
		return Range{}, fmt.Errorf("%w: no number in %q", ErrMalformed, text)
	}
	return Exact(LargestNumber(text)), nil
}

// IsOverMillion reports whether text is one of the "greater than HKD 1,000,000"
// sentinels, e.g. "> HKD 1,000,000" or ">HKD$1,000,000".
func IsOverMillion(text string) bool {
	return sentinelStripper.Replace(width.Fold.String(strings.TrimSpace(text))) == ">HKD1,000,000"
}

// SaturatingMul multiplies two non-negative amounts, capping the result at Unbounded.
func SaturatingMul(a, b int64) int64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > Unbounded/b {
		return Unbounded
	}
	return a * b
}

func normalize(text string) string {
	return strings.TrimSpace(currencyStripper.Replace(width.Fold.String(text)))
}

func parseWhole(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative amount %d", n)
	}
	return n, nil
}

func numbers(text string) []int64 {
	matches := numberPattern.FindAllString(width.Fold.String(text), -1)
	out := make([]int64, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.ParseInt(strings.ReplaceAll(m, ",", ""), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
