package math

import (
	"fmt"
	"strconv"
	"strings"
)

// Format formats a float based on the given precision.
func Format(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}

// FormatAll formats a slice of floats as a bracketed list.
func FormatAll(ff []float64, precision int) string {
	ss := make([]string, len(ff))
	for i, f := range ff {
		ss[i] = Format(f, precision)
	}
	return fmt.Sprintf("[%s]", strings.Join(ss, ", "))
}

// Percentage renders done out of total as a percentage with 3 decimals e.g. "12.500%".
// NOTE : a zero total renders as 0
func Percentage(done, total int) string {
	if total == 0 {
		return Format(0, 3) + "%"
	}
	return Format(float64(done)/float64(total)*100, 3) + "%"
}

// Sum returns the sum of the given integers.
func Sum(ii []int) int {
	var s int
	for _, i := range ii {
		s += i
	}
	return s
}
