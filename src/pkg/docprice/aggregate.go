// Package docprice turns daily day-old-chick supplier quotes into the
// weekly price trend report: per-day supplier averages rolled up by ISO
// week, week-over-week movement, and the styled dashboard sheet.
package docprice

import (
	"sort"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"poultry-dashboard/src/pkg/parse"
)

// the date sits in the first column, every later column is one supplier
const columnDate = 0

/*
WeekRow is one aggregated ISO week of supplier quotes. Start and End are
the earliest and latest quoted dates in the bucket, Entries the number of
quoted days. The WoW fields are nil for the first week and when the prior
week's average is zero.
*/
type WeekRow struct {
	Year     int       `json:"year"`
	Week     int       `json:"week"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Entries  int       `json:"entries"`
	AvgPrice float64   `json:"avg_price"`
	MinPrice float64   `json:"min_price"`
	MaxPrice float64   `json:"max_price"`
	Spread   float64   `json:"spread"`
	WowPct   *float64  `json:"wow_pct"`
	WowAbs   *float64  `json:"wow_abs"`
}

// one quoted day: the average, lowest, and highest supplier price
type daySample struct {
	avg float64
	min float64
	max float64
}

type weekSamples struct {
	days  []daySample
	dates []time.Time
}

/*
AggregateWeekly buckets daily quotes by ISO week of the given calendar
year. A day's sample is every positive parsed price across the supplier
columns; rows with an unparseable or off-year date, or without a single
positive price, are dropped.
*/
func AggregateWeekly(data [][]string, year int) (weeks []WeekRow) {
	buckets := map[parse.WeekKey]*weekSamples{}

	kept := 0
	for _, row := range data {
		date, ok := parse.Date(parse.Cell(row, columnDate))
		if !ok || date.Year() != year {
			continue
		}

		sum := 0.0
		count := 0
		lowest := 0.0
		highest := 0.0
		for _, cell := range row[1:] {
			price, parsed := parse.Float(cell)
			if !parsed || price <= 0 {
				continue
			}
			sum += price
			count += 1
			if count == 1 || price < lowest {
				lowest = price
			}
			if count == 1 || price > highest {
				highest = price
			}
		}
		if count == 0 {
			continue
		}
		kept += 1

		key := parse.WeekOf(date)
		samples := buckets[key]
		if samples == nil {
			samples = &weekSamples{}
			buckets[key] = samples
		}
		samples.days = append(samples.days, daySample{avg: sum / float64(count), min: lowest, max: highest})
		samples.dates = append(samples.dates, date)
	}
	tl.Log(tl.Info1, palette.Cyan, "Filtered %d of %d rows (current year with prices)", kept, len(data))

	keys := make([]parse.WeekKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		return keys[i].Week < keys[j].Week
	})

	for _, key := range keys {
		samples := buckets[key]

		start, end := dateExtent(samples.dates)
		avgSum := 0.0
		weekMin := samples.days[0].min
		weekMax := samples.days[0].max
		for _, day := range samples.days {
			avgSum += day.avg
			if day.min < weekMin {
				weekMin = day.min
			}
			if day.max > weekMax {
				weekMax = day.max
			}
		}

		weeks = append(weeks, WeekRow{
			Year:     key.Year,
			Week:     key.Week,
			Start:    start,
			End:      end,
			Entries:  len(samples.days),
			AvgPrice: parse.RoundTo(avgSum/float64(len(samples.days)), 0),
			MinPrice: weekMin,
			MaxPrice: weekMax,
			Spread:   parse.RoundTo(weekMax-weekMin, 0),
		})
	}

	for weekIndex := range weeks {
		if weekIndex == 0 {
			continue
		}
		previous := weeks[weekIndex-1].AvgPrice
		if previous == 0 {
			continue
		}
		pct := parse.RoundTo((weeks[weekIndex].AvgPrice-previous)/previous*100, 1)
		abs := parse.RoundTo(weeks[weekIndex].AvgPrice-previous, 0)
		weeks[weekIndex].WowPct = &pct
		weeks[weekIndex].WowAbs = &abs
	}

	return weeks
}

func dateExtent(dates []time.Time) (earliest time.Time, latest time.Time) {
	for dateIndex, date := range dates {
		if dateIndex == 0 || date.Before(earliest) {
			earliest = date
		}
		if dateIndex == 0 || date.After(latest) {
			latest = date
		}
	}
	return earliest, latest
}
