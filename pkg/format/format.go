package format

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/unicode/norm"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats a dollar amount with thousands separators. Whole amounts
// drop the cents: 85000 -> "$85,000", 62.5 -> "$62.50".
func Currency(amount float64) string {
	if amount == math.Trunc(amount) {
		return printer.Sprintf("$%d", int64(amount))
	}
	return printer.Sprintf("$%.2f", amount)
}

// Compensation renders an amount with its unit, e.g. "$85,000/year" or
// "$100/hour".
func Compensation(amount float64, hourly bool) string {
	if hourly {
		return Currency(amount) + "/hour"
	}
	return Currency(amount) + "/year"
}

// Name trims, collapses inner whitespace and composes a person's name to NFC
func Name(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s, strips diacritics and joins the remaining alphanumeric
// runs with '-': "José Núñez" -> "jose-nunez".
func Slug(s string) string {
	s = strings.ToLower(stripDiacritics(s))
	s = nonSlugRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// stripDiacritics decomposes to NFD and drops the combining marks
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var result strings.Builder
	result.Grow(len(decomposed))

	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
