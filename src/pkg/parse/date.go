// Package parse interprets raw spreadsheet cell text: dates in the formats
// field teams actually type, numbers with thousands separators, and the
// range-style price notations used in survey entries.
package parse

import (
	"strings"
	"time"
)

/*
dateLayouts is the fixed trial order for Date. First match wins, so an
ambiguous numeric string like "01/02/2025" resolves month-first: the US
layout is tried before the day-first one.
*/
var dateLayouts = []string{
	"02-Jan-2006",
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"02 Jan 2006",
	"Jan 02, 2006",
	"2006/01/02",
	"02-01-2006",
	"02 January 2006",
	"January 02, 2006",
}

/*
Date tries the supported date layouts against the trimmed input and returns
the first success as (date, true), or (zero, false) when nothing matches.
Impossible calendar dates ("31 Feb 2025") fail every layout and come back
absent rather than erroring.
*/
func Date(raw string) (parsed time.Time, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return parsed, false
	}

	for _, layout := range dateLayouts {
		value, parseErr := time.ParseInLocation(layout, trimmed, time.Local)
		if parseErr == nil {
			return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.Local), true
		}
	}

	return parsed, false
}

/*
WeekKey identifies an ISO-8601 week bucket.
*/
type WeekKey struct {
	Year int
	Week int
}

/*
WeekOf returns the ISO week bucket a date belongs to.
*/
func WeekOf(date time.Time) WeekKey {
	year, week := date.ISOWeek()
	return WeekKey{Year: year, Week: week}
}
