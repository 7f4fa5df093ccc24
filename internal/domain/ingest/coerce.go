package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leadingFloat matches the numeric prefix of a cell, so "25.3%" reads as 25.3.
var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseLeadingFloat parses the numeric prefix of s. ok is false when there is none
// or the result is not finite.
func parseLeadingFloat(s string) (float64, bool) {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// salaryValue strips thousands separators before parsing.
func salaryValue(s string) (float64, bool) {
	return parseLeadingFloat(strings.ReplaceAll(s, ",", ""))
}

// PtsPerDollar is projection per thousand of salary, 0 when salary is not positive
// or the quotient overflows.
func PtsPerDollar(projection, salary float64) float64 {
	v, _ := ptsPerDollar(projection, salary)
	return v
}

// ptsPerDollar reports ok=false when a positive salary still yields a non-finite
// quotient, e.g. a denormal salary.
func ptsPerDollar(projection, salary float64) (float64, bool) {
	if salary <= 0 {
		return 0, true
	}
	v := projection / (salary / 1000)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
