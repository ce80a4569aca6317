package format

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	faPrinter = message.NewPrinter(language.Persian)
	enPrinter = message.NewPrinter(language.English)
)

// Toman formats a whole-Toman amount for the given language. Persian output
// uses Eastern Arabic digits with native grouping, e.g. ۵٬۰۰۰٬۰۰۰ تومان.
func Toman(amount int64, lang string) string {
	switch strings.ToLower(lang) {
	case "fa":
		return faPrinter.Sprint(number.Decimal(amount)) + " تومان"
	default:
		return enPrinter.Sprint(number.Decimal(amount)) + " Toman"
	}
}

// Number formats a plain integer in the given language's digits.
func Number(n int64, lang string) string {
	if strings.ToLower(lang) == "fa" {
		return faPrinter.Sprint(number.Decimal(n))
	}
	return enPrinter.Sprint(number.Decimal(n))
}

// Percent renders a discount percentage, e.g. "۲۰٪" for fa.
func Percent(p int, lang string) string {
	if strings.ToLower(lang) == "fa" {
		return faPrinter.Sprint(number.Decimal(int64(p))) + "٪"
	}
	return enPrinter.Sprint(number.Decimal(int64(p))) + "%"
}

// Date formats time in a locale-friendly short form.
func Date(t time.Time, lang string) string {
	switch strings.ToLower(lang) {
	case "fa":
		return t.Format("2006/01/02")
	default:
		return t.Format("Jan 2, 2006")
	}
}
