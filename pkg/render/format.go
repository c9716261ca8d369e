// Package render formats materialized rows for display.
package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNumber renders v with two decimals and thousands grouping,
// e.g. 536963416.6231 -> "536,963,416.62".
func FormatNumber(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// FormatCurrency is FormatNumber with a dollar prefix.
func FormatCurrency(v float64) string {
	return "$" + FormatNumber(v)
}
