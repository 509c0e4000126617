// Package utils holds small formatting helpers shared across the service.
package utils

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders a listing price as a grouped dollar amount,
// e.g. 475000 -> "$475,000".
func FormatPrice(price float64) string {
	if price == float64(int64(price)) {
		return pricePrinter.Sprintf("$%d", int64(price))
	}
	return pricePrinter.Sprintf("$%.2f", price)
}

// Truncate shortens s to max runes for log fields, appending an ellipsis
// when anything was cut.
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
