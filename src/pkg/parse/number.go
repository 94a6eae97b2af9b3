package parse

import (
	"math"
	"strconv"
	"strings"
)

/*
Float parses a numeric cell, tolerating thousands-separator commas and
surrounding whitespace. Returns (value, true) on success and (0, false)
otherwise, so a failed parse is distinguishable from a legitimate zero.
*/
func Float(raw string) (value float64, ok bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return 0, false
	}

	value, parseErr := strconv.ParseFloat(cleaned, 64)
	if parseErr != nil {
		return 0, false
	}
	return value, true
}

/*
RoundTo rounds half-even to the given number of decimal places. Every
rounded metric in the pipeline goes through here, so the mode is uniform.
*/
func RoundTo(value float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.RoundToEven(value*shift) / shift
}
