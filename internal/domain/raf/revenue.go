package raf

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// Revenue projects an aggregate RAF total to a dollar amount using the
// configured dollars-per-RAF-point rate. Garbage in, garbage out: NaN and
// infinities propagate unchecked.
func Revenue(rafTotal, baseRate float64) float64 {
	return rafTotal * baseRate
}

// FormatCurrency renders a dollar amount with en-US digit grouping and no
// decimal places, rounded to the nearest whole dollar.
func FormatCurrency(amount float64) string {
	return currencyPrinter.Sprintf("$%d", int64(math.Round(amount)))
}
