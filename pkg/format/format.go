/*
format renders optional numeric and string values for human-readable
tool output. Absent values always render as a placeholder so the shape of
the output does not depend on which fields the upstream API returned.
*/
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	// Packages
	language "golang.org/x/text/language"
	message "golang.org/x/text/message"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// NA is rendered in place of an absent value
	NA = "N/A"

	// Fixed precision for prices and percentages
	pricePrecision   = 6
	percentPrecision = 2

	// Maximum number of fraction digits for grouped numbers
	maxFractionDigits = 3
)

var (
	printer = message.NewPrinter(language.English)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Price returns the value with six decimal places, or NA
func Price(v *float64) string {
	if !valid(v) {
		return NA
	}
	return strconv.FormatFloat(*v, 'f', pricePrecision, 64)
}

// Percent returns the value with two decimal places and a percent sign, or NA
func Percent(v *float64) string {
	if !valid(v) {
		return NA
	}
	return strconv.FormatFloat(*v, 'f', percentPrecision, 64) + "%"
}

// Number returns the value with thousands separators and at most three
// fraction digits, without trailing zeros, or NA
func Number(v *float64) string {
	if !valid(v) {
		return NA
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", fractionDigits(*v)), *v)
}

// Integer returns the value with thousands separators, or NA
func Integer(v *int64) string {
	if v == nil {
		return NA
	}
	return printer.Sprintf("%d", *v)
}

// Dollars returns a grouped number prefixed with a dollar sign, or NA
func Dollars(v *float64) string {
	if !valid(v) {
		return NA
	}
	return "$" + Number(v)
}

// Default returns the value, or def when the value is empty
func Default(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// First returns the first non-empty value of a list, or NA
func First(v []string) string {
	for _, s := range v {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return NA
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func valid(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// fractionDigits returns the number of significant fraction digits after
// rounding to maxFractionDigits
func fractionDigits(v float64) int {
	s := strings.TrimRight(strconv.FormatFloat(v, 'f', maxFractionDigits, 64), "0")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
