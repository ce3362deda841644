package dashboard

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currencySymbol = "$"

// FormatCurrency renders a value as US-localized currency ("$1,000").
func FormatCurrency(value float64) string {
	return FormatCurrencyIn("", value)
}

// FormatCurrencyIn renders a value using the digit grouping of the given locale.
// Unknown or empty locales fall back to English.
func FormatCurrencyIn(locale string, value float64) string {
	printer := message.NewPrinter(currencyLocale(locale))
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	// At most three fraction digits, trailing zeros dropped.
	value = math.Round(value*1000) / 1000
	var digits string
	if value == math.Trunc(value) {
		digits = printer.Sprintf("%d", int64(value))
	} else {
		digits = printer.Sprintf("%.3f", value)
		digits = strings.TrimRight(digits, "0")
		digits = strings.TrimRight(digits, ".,")
	}
	return sign + currencySymbol + digits
}

// FormatThousands abbreviates a currency value in thousands ("$32k").
func FormatThousands(value float64) string {
	return currencySymbol + strconv.FormatFloat(math.Round(value/1000), 'f', 0, 64) + "k"
}

// FormatPercent renders a percentage with its suffix ("40%").
func FormatPercent(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "%"
}

func currencyLocale(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}

// share returns part/total as a percentage, or 0 when total is not positive.
func share(part, total float64) float64 {
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0
	}
	return part / total * 100
}
