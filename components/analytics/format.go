package analytics

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders whole dollars with grouping, e.g. "$21,940".
func FormatUSD(amount float64) string {
	rounded := math.Round(amount)
	if rounded < 0 {
		return usPrinter.Sprintf("-$%d", int64(-rounded))
	}
	return usPrinter.Sprintf("$%d", int64(rounded))
}

// FormatPercent renders a rounded percentage, e.g. "47%".
func FormatPercent(value float64) string {
	return usPrinter.Sprintf("%d%%", int64(math.Round(value)))
}

// FormatImpact renders a monthly impact label in the "+$N/mo" form ParseImpact reads.
func FormatImpact(amount float64) string {
	return "+" + FormatUSD(amount) + "/mo"
}
