package parse

import "strings"

/*
SellingPrice normalizes a selling-price survey cell. Entries sometimes hold
two quotes separated by a slash ("3900/4000"); those become the half-even
integer-rounded mean of the positive parts. A plain positive number passes
through unchanged. Blank cells, non-numbers, and non-positive values are
absent.
*/
func SellingPrice(raw string) (price float64, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}

	if strings.Contains(trimmed, "/") {
		return meanOfPositiveParts(strings.Split(trimmed, "/"))
	}

	value, parsed := Float(trimmed)
	if !parsed || value <= 0 {
		return 0, false
	}
	return value, true
}

/*
BuyingPrice normalizes a buying-price survey cell. Ranges use a spaced
hyphen ("3,300 - 3,500") and become the half-even integer-rounded mean of
the positive parts. A plain positive number passes through unchanged.
*/
func BuyingPrice(raw string) (price float64, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}

	if strings.Contains(trimmed, " - ") {
		return meanOfPositiveParts(strings.Split(trimmed, " - "))
	}

	value, parsed := Float(trimmed)
	if !parsed || value <= 0 {
		return 0, false
	}
	return value, true
}

func meanOfPositiveParts(parts []string) (mean float64, ok bool) {
	sum := 0.0
	count := 0
	for _, part := range parts {
		value, parsed := Float(part)
		if parsed && value > 0 {
			sum += value
			count += 1
		}
	}
	if count == 0 {
		return 0, false
	}
	return RoundTo(sum/float64(count), 0), true
}
