package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Currency represents an ISO 4217 currency code
type Currency string

const (
	INR Currency = "INR"
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CAD Currency = "CAD"
	AUD Currency = "AUD"
)

// DefaultCurrency is used when a booking does not name one
const DefaultCurrency = INR

// Grouping selects how integer digits are separated when formatting
type Grouping int

const (
	// GroupThousands separates every three digits (1,234,567)
	GroupThousands Grouping = iota
	// GroupIndian separates the last three digits, then every two (12,34,567)
	GroupIndian
)

// CurrencyInfo contains metadata about a currency
type CurrencyInfo struct {
	Code     Currency
	Symbol   string
	Grouping Grouping
}

var currencies = map[Currency]CurrencyInfo{
	INR: {Code: INR, Symbol: "₹", Grouping: GroupIndian},
	USD: {Code: USD, Symbol: "$", Grouping: GroupThousands},
	EUR: {Code: EUR, Symbol: "€", Grouping: GroupThousands},
	GBP: {Code: GBP, Symbol: "£", Grouping: GroupThousands},
	JPY: {Code: JPY, Symbol: "¥", Grouping: GroupThousands},
	CAD: {Code: CAD, Symbol: "CA$", Grouping: GroupThousands},
	AUD: {Code: AUD, Symbol: "A$", Grouping: GroupThousands},
}

// GetCurrencyInfo returns info about a currency
func GetCurrencyInfo(c Currency) (CurrencyInfo, bool) {
	info, ok := currencies[c]
	return info, ok
}

// IsSupported reports whether the currency can be priced
func IsSupported(c Currency) bool {
	_, ok := currencies[c]
	return ok
}

// Parse normalizes a currency code, returning false for unsupported codes
func Parse(code string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if c == "" {
		return DefaultCurrency, true
	}
	return c, IsSupported(c)
}

// ToMinor converts a two-decimal major amount to minor units (paise, cents)
func ToMinor(amountMajor float64) int64 {
	return int64(math.Round(amountMajor * 100))
}

// Format renders an amount for display with two fixed fraction digits,
// e.g. ₹1,23,456.50 or $1,234.50.
func Format(amount float64, c Currency) string {
	info, ok := GetCurrencyInfo(c)
	if !ok {
		return fmt.Sprintf("%.2f %s", amount, c)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprintf("%s%v", info.Symbol, amount)
	}

	minor := ToMinor(amount)
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	whole := strconv.FormatInt(minor/100, 10)
	return fmt.Sprintf("%s%s%s.%02d", sign, info.Symbol, group(whole, info.Grouping), minor%100)
}

func group(digits string, g Grouping) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	size := 3
	if g == GroupIndian {
		size = 2
	}

	var parts []string
	for len(head) > size {
		parts = append([]string{head[len(head)-size:]}, parts...)
		head = head[:len(head)-size]
	}
	parts = append([]string{head}, parts...)
	parts = append(parts, tail)
	return strings.Join(parts, ",")
}
