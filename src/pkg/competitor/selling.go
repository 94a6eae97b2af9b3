// Package competitor builds the two competitor price reports: selling
// prices surveyed per location, and buying prices paid to farmers.
package competitor

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"poultry-dashboard/src/pkg/parse"
)

// survey tabs carry an _Entry suffix; reports show the bare location
var locationNames = map[string]string{
	"Abuja_Entry":  "Abuja",
	"Kaduna_Entry": "Kaduna",
	"Kano_Entry":   "Kano",
}

// product names as they appear on the survey header row
const (
	ProductWholeChicken = "Whole Chicken"
	ProductGizzard      = "Gizzard"
)

// Products tracked on the selling survey, in report column order.
var Products = []string{ProductWholeChicken, ProductGizzard}

// the own-brand marker in the survey's Brand column
const ownBrand = "pullus"

const (
	sellingDateColumn  = 0
	sellingBrandColumn = 1
)

/*
LocationName maps a survey tab name to its display name, falling back to
the tab name itself.
*/
func LocationName(tabName string) string {
	if name, ok := locationNames[tabName]; ok {
		return name
	}
	return tabName
}

/*
SellingRecord is one surveyed brand row: the quoted price per product,
keyed by product name. Unquoted products are absent from the map.
*/
type SellingRecord struct {
	Date     time.Time          `json:"date"`
	Location string             `json:"location"`
	Brand    string             `json:"brand"`
	Prices   map[string]float64 `json:"prices"`
}

/*
ExtractSellingRecords reads one survey tab's rows (header row first)
into records. Rows without a parseable current-year date or a brand are
dropped; product prices go through the slash-range parser. In strict
mode a product column missing from the header is a schema error,
otherwise that product is simply unquoted on every row.
*/
func ExtractSellingRecords(location string, rows [][]string, year int, strict bool) (records []SellingRecord, e *xerr.Error) {
	if len(rows) == 0 {
		return nil, nil
	}
	columns := headerIndex(rows[0])
	if strict {
		for _, product := range Products {
			if _, mapped := columns[product]; !mapped {
				return nil, xerr.NewError(fmt.Errorf("column '%s' not found in header", product),
					"map the selling survey schema", location)
			}
		}
	}
	data := rows[1:]

	kept := 0
	for _, row := range data {
		date, ok := parse.Date(parse.Cell(row, sellingDateColumn))
		if !ok || date.Year() != year {
			continue
		}
		brand := strings.TrimSpace(parse.Cell(row, sellingBrandColumn))
		if brand == "" {
			continue
		}
		kept += 1

		prices := map[string]float64{}
		for _, product := range Products {
			columnIndex, mapped := columns[product]
			if !mapped {
				continue
			}
			if price, parsed := parse.SellingPrice(parse.Cell(row, columnIndex)); parsed {
				prices[product] = price
			}
		}

		records = append(records, SellingRecord{Date: date, Location: location, Brand: brand, Prices: prices})
	}
	tl.Log(tl.Info1, palette.Cyan, "%s: %d of %d rows kept", location, kept, len(data))
	return records, nil
}

// headerIndex maps trimmed header names to column positions, last wins
func headerIndex(header []string) map[string]int {
	columns := map[string]int{}
	for columnIndex, name := range header {
		columns[strings.TrimSpace(name)] = columnIndex
	}
	return columns
}

/*
ProductComparison is one product's own-vs-competitor read: mean own
price, mean competitor price, and the percent the own price sits above
(positive) or below (negative) the competitor average. nil when a side
has no quotes.
*/
type ProductComparison struct {
	Pullus  *float64 `json:"pullus"`
	CompAvg *float64 `json:"comp_avg"`
	DiffPct *float64 `json:"diff_pct"`
}

/*
SellingRow is one (survey date, location) aggregate across brands.
CompBrands counts the distinct competitor brands that quoted at least
one product that day.
*/
type SellingRow struct {
	Date       time.Time                    `json:"date"`
	Location   string                       `json:"location"`
	CompBrands int                          `json:"comp_brands"`
	ByProduct  map[string]ProductComparison `json:"by_product"`
}

type sellingGroup struct {
	pullus     map[string][]float64
	comp       map[string][]float64
	compBrands map[string]struct{}
}

/*
AggregateSelling groups records by (date, location) and compares the own
brand's prices against the competitor average per product, sorted by
date then location.
*/
func AggregateSelling(records []SellingRecord) (rows []SellingRow) {
	type groupKey struct {
		date     time.Time
		location string
	}
	groups := map[groupKey]*sellingGroup{}

	for _, record := range records {
		key := groupKey{date: record.Date, location: record.Location}
		group := groups[key]
		if group == nil {
			group = &sellingGroup{
				pullus:     map[string][]float64{},
				comp:       map[string][]float64{},
				compBrands: map[string]struct{}{},
			}
			groups[key] = group
		}

		isOwn := strings.ToLower(record.Brand) == ownBrand
		for _, product := range Products {
			price, quoted := record.Prices[product]
			if !quoted {
				continue
			}
			if isOwn {
				group.pullus[product] = append(group.pullus[product], price)
			} else {
				group.comp[product] = append(group.comp[product], price)
				group.compBrands[record.Brand] = struct{}{}
			}
		}
	}

	keys := make([]groupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].date.Equal(keys[j].date) {
			return keys[i].date.Before(keys[j].date)
		}
		return keys[i].location < keys[j].location
	})

	for _, key := range keys {
		group := groups[key]
		row := SellingRow{
			Date:       key.date,
			Location:   key.location,
			CompBrands: len(group.compBrands),
			ByProduct:  map[string]ProductComparison{},
		}

		for _, product := range Products {
			comparison := ProductComparison{
				Pullus:  roundedMean(group.pullus[product]),
				CompAvg: roundedMean(group.comp[product]),
			}
			if comparison.Pullus != nil && comparison.CompAvg != nil && *comparison.CompAvg > 0 {
				pullusPrice := *comparison.Pullus
				compAvg := *comparison.CompAvg
				diff := parse.RoundTo((pullusPrice-compAvg)/compAvg*100, 1)
				comparison.DiffPct = &diff
			}
			row.ByProduct[product] = comparison
		}
		rows = append(rows, row)
	}
	return rows
}

// roundedMean is the whole-naira mean of the prices, nil when empty
func roundedMean(prices []float64) *float64 {
	if len(prices) == 0 {
		return nil
	}
	sum := 0.0
	for _, price := range prices {
		sum += price
	}
	mean := parse.RoundTo(sum/float64(len(prices)), 0)
	return &mean
}
