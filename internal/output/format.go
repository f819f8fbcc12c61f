package output

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers the way Brazilian Portuguese readers expect:
// "." groups thousands and "," separates decimals.
var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency formats v as whole Brazilian reais, e.g. "R$ 1.234".
func Currency(v float64) string {
	return printer.Sprintf("R$ %.0f", v)
}

// Number formats a count with thousands grouping.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// Decimal formats v with the given number of decimals.
func Decimal(v float64, digits int) string {
	return printer.Sprintf(fmt.Sprintf("%%.%df", digits), v)
}

// Percent formats v as a percentage with the given number of decimals.
func Percent(v float64, digits int) string {
	return Decimal(v, digits) + "%"
}
