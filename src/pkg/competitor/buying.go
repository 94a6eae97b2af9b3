package competitor

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"poultry-dashboard/src/pkg/parse"
)

// the buying survey has preamble rows; this marker identifies the header
const buyingHeaderMarker = "Entry ID"

// product type labels after title-casing
const (
	ProductDressedBirds = "Dressed Birds"
	ProductLiveBirds    = "Live Birds"
)

/*
BuyingRecord is one farm-gate survey entry. Prices are absent when the
cell is blank or unparseable.
*/
type BuyingRecord struct {
	Date        time.Time `json:"date"`
	State       string    `json:"state"`
	Competitor  string    `json:"competitor"`
	ProductType string    `json:"product_type"`
	CompPrice   *float64  `json:"comp_price"`
	PullusPrice *float64  `json:"pullus_price"`
	Notes       string    `json:"notes"`
}

// resolved survey column positions
type buyingColumns struct {
	date        int
	state       int
	competitor  int
	productType int
	compPrice   int
	pullusPrice int
	notes       int
}

/*
mapBuyingColumns resolves the survey columns by trimmed header name. In
strict mode a name missing from the header is a schema error; otherwise
the column falls back to its historical position.
*/
func mapBuyingColumns(header []string, strict bool) (mapped buyingColumns, e *xerr.Error) {
	columns := headerIndex(header)
	fields := []struct {
		name     string
		fallback int
		target   *int
	}{
		{"Date", 1, &mapped.date},
		{"State", 4, &mapped.state},
		{"Competitor Name", 5, &mapped.competitor},
		{"Product Type", 6, &mapped.productType},
		{"Competitor Price (N)", 7, &mapped.compPrice},
		{"Pullus Price (N)", 8, &mapped.pullusPrice},
		{"Notes", 9, &mapped.notes},
	}
	for _, field := range fields {
		columnIndex, found := columns[field.name]
		if !found {
			if strict {
				return mapped, xerr.NewError(fmt.Errorf("column '%s' not found in header", field.name),
					"map the buying survey schema", strings.Join(header, " | "))
			}
			columnIndex = field.fallback
		}
		*field.target = columnIndex
	}
	return mapped, nil
}

/*
ExtractBuyingRecords locates the header row by its "Entry ID" marker,
maps the columns per mapBuyingColumns, and reads every current-year
entry naming a competitor. A sheet without the marker yields no records.
*/
func ExtractBuyingRecords(rows [][]string, year int, strict bool) (records []BuyingRecord, e *xerr.Error) {
	headerRow := -1
	for rowIndex, row := range rows {
		for _, cell := range row {
			if strings.Contains(cell, buyingHeaderMarker) {
				headerRow = rowIndex
				break
			}
		}
		if headerRow >= 0 {
			break
		}
	}
	if headerRow < 0 {
		tl.Log(tl.Warning, palette.PurpleBright, "Could not find header row (no '%s' cell)", buyingHeaderMarker)
		return nil, nil
	}

	mapped, e := mapBuyingColumns(rows[headerRow], strict)
	if e != nil {
		return nil, e
	}
	data := rows[headerRow+1:]
	titleCaser := cases.Title(language.English)

	for _, row := range data {
		date, ok := parse.Date(parse.Cell(row, mapped.date))
		if !ok || date.Year() != year {
			continue
		}
		competitor := strings.TrimSpace(parse.Cell(row, mapped.competitor))
		if competitor == "" {
			continue
		}

		record := BuyingRecord{
			Date:        date,
			State:       strings.TrimSpace(parse.Cell(row, mapped.state)),
			Competitor:  competitor,
			ProductType: titleCaser.String(strings.TrimSpace(parse.Cell(row, mapped.productType))),
			Notes:       strings.TrimSpace(parse.Cell(row, mapped.notes)),
		}
		if price, parsed := parse.BuyingPrice(parse.Cell(row, mapped.compPrice)); parsed {
			record.CompPrice = &price
		}
		if price, parsed := parse.BuyingPrice(parse.Cell(row, mapped.pullusPrice)); parsed {
			record.PullusPrice = &price
		}
		records = append(records, record)
	}
	tl.Log(tl.Info1, palette.Cyan, "Fetched %d of %d rows (current year)", len(records), len(data))
	return records, nil
}

/*
BuyingSummary compares dressed-bird buying prices against the market and
carries the live-bird context read for the report banner.
*/
type BuyingSummary struct {
	AvgPullus      float64   `json:"avg_pullus"`
	AvgComp        float64   `json:"avg_comp"`
	DiffPct        float64   `json:"diff_pct"`
	DiffAbs        float64   `json:"diff_abs"`
	TotalEntries   int       `json:"total_entries"`
	DressedEntries int       `json:"dressed_entries"`
	LiveEntries    int       `json:"live_entries"`
	LiveCompPrices []float64 `json:"live_comp_prices"`
}

/*
ComputeBuyingSummary averages the dressed-bird prices on both sides and
takes their differential. Averages fall back to zero when a side has no
prices, the percent differential to zero when the competitor average is
zero.
*/
func ComputeBuyingSummary(records []BuyingRecord) BuyingSummary {
	summary := BuyingSummary{TotalEntries: len(records)}

	pullusSum := 0.0
	pullusCount := 0
	compSum := 0.0
	compCount := 0
	for _, record := range records {
		switch record.ProductType {
		case ProductDressedBirds:
			summary.DressedEntries += 1
			if record.PullusPrice != nil {
				pullusSum += *record.PullusPrice
				pullusCount += 1
			}
			if record.CompPrice != nil {
				compSum += *record.CompPrice
				compCount += 1
			}
		case ProductLiveBirds:
			summary.LiveEntries += 1
			if record.CompPrice != nil {
				summary.LiveCompPrices = append(summary.LiveCompPrices, *record.CompPrice)
			}
		}
	}

	if pullusCount > 0 {
		summary.AvgPullus = parse.RoundTo(pullusSum/float64(pullusCount), 0)
	}
	if compCount > 0 {
		summary.AvgComp = parse.RoundTo(compSum/float64(compCount), 0)
	}
	if summary.AvgComp != 0 {
		summary.DiffPct = parse.RoundTo((summary.AvgPullus-summary.AvgComp)/summary.AvgComp*100, 1)
	}
	summary.DiffAbs = parse.RoundTo(summary.AvgPullus-summary.AvgComp, 0)

	return summary
}
