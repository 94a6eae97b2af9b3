// Package purchase turns raw purchase-tracker rows into the weekly
// purchase report: ISO-week buckets with daily averages, week-over-week
// movement, and the styled dashboard sheet.
package purchase

import (
	"sort"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"poultry-dashboard/src/pkg/parse"
)

// source sheet column indices (update if sheet layout changes)
const (
	columnDate          = 0
	columnBirds         = 5
	columnChickenWeight = 8
	columnGizzardWeight = 9
)

/*
WeekRow is one aggregated ISO week of purchases. Start and End are the
earliest and latest dates actually observed in the bucket. The WoW fields
are nil for the first week and when the prior week's average is zero.
*/
type WeekRow struct {
	Year           int       `json:"year"`
	Week           int       `json:"week"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	PurchaseDays   int       `json:"purchase_days"`
	TotalBirds     int       `json:"total_birds"`
	ChickenKg      float64   `json:"chicken_kg"`
	GizzardKg      float64   `json:"gizzard_kg"`
	TotalKg        float64   `json:"total_kg"`
	AvgBirdsPerDay float64   `json:"avg_birds_per_day"`
	AvgKgPerDay    float64   `json:"avg_kg_per_day"`
	BirdsWoW       *float64  `json:"birds_wow"`
	WeightWoW      *float64  `json:"weight_wow"`
}

type weekTotals struct {
	birds     int
	chickenKg float64
	gizzardKg float64
	dates     []time.Time
}

/*
AggregateWeekly buckets purchase rows by ISO week of the given calendar
year. Rows with an unparseable or off-year date are dropped; a bird count
is only read from a non-empty cell; weight cells that fail to parse
contribute nothing.
*/
func AggregateWeekly(data [][]string, year int) (weeks []WeekRow) {
	buckets := map[parse.WeekKey]*weekTotals{}

	kept := 0
	for _, row := range data {
		date, ok := parse.Date(parse.Cell(row, columnDate))
		if !ok || date.Year() != year {
			continue
		}
		kept += 1

		key := parse.WeekOf(date)
		totals := buckets[key]
		if totals == nil {
			totals = &weekTotals{}
			buckets[key] = totals
		}

		birdsCell := parse.Cell(row, columnBirds)
		if birdsCell != "" {
			birdsValue, _ := parse.Float(birdsCell)
			totals.birds += int(birdsValue)
		}
		if chickenValue, parsed := parse.Float(parse.Cell(row, columnChickenWeight)); parsed {
			totals.chickenKg += chickenValue
		}
		if gizzardValue, parsed := parse.Float(parse.Cell(row, columnGizzardWeight)); parsed {
			totals.gizzardKg += gizzardValue
		}
		totals.dates = append(totals.dates, date)
	}
	tl.Log(tl.Info1, palette.Cyan, "Filtered %d of %d rows (current year)", kept, len(data))

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
		totals := buckets[key]

		start, end := dateExtent(totals.dates)
		purchaseDays := distinctDays(totals.dates)
		totalKg := parse.RoundTo(totals.chickenKg+totals.gizzardKg, 2)

		weeks = append(weeks, WeekRow{
			Year:           key.Year,
			Week:           key.Week,
			Start:          start,
			End:            end,
			PurchaseDays:   purchaseDays,
			TotalBirds:     totals.birds,
			ChickenKg:      parse.RoundTo(totals.chickenKg, 2),
			GizzardKg:      parse.RoundTo(totals.gizzardKg, 2),
			TotalKg:        totalKg,
			AvgBirdsPerDay: parse.RoundTo(float64(totals.birds)/float64(purchaseDays), 1),
			AvgKgPerDay:    parse.RoundTo(totalKg/float64(purchaseDays), 2),
		})
	}

	for weekIndex := range weeks {
		if weekIndex == 0 {
			continue
		}
		previous := weeks[weekIndex-1]
		weeks[weekIndex].BirdsWoW = wowPct(weeks[weekIndex].AvgBirdsPerDay, previous.AvgBirdsPerDay)
		weeks[weekIndex].WeightWoW = wowPct(weeks[weekIndex].AvgKgPerDay, previous.AvgKgPerDay)
	}

	return weeks
}

/*
wowPct is the percent change against the prior week, 1dp, or nil when the
prior value is zero.
*/
func wowPct(current float64, previous float64) *float64 {
	if previous == 0 {
		return nil
	}
	change := parse.RoundTo((current-previous)/previous*100, 1)
	return &change
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

func distinctDays(dates []time.Time) int {
	seen := map[string]struct{}{}
	for _, date := range dates {
		seen[date.Format("2006-01-02")] = struct{}{}
	}
	return len(seen)
}
