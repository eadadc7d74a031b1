package deals

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.English)

// FormattedPrice renders a price with two fraction digits and thousands
// grouping, e.g. 1234.5 -> "1,234.50".
func FormattedPrice(value decimal.Decimal) string {
	return pricePrinter.Sprintf("%.2f", value.Round(2).InexactFloat64())
}

// RawPrice renders a price without grouping or padding, e.g. 20.00 -> "20".
func RawPrice(value decimal.Decimal) string {
	return value.String()
}
