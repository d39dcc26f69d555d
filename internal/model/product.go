// Package model defines the core domain types shared across the application.
package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product represents a single catalog entry from the tabular source.
// Records are immutable once fetched; derived views never mutate them.
type Product struct {
	Occasion        string `json:"occasion"`
	CustomType      string `json:"customType"`
	Industry        string `json:"industry"`
	Theme           string `json:"theme"`
	SubCategory     string `json:"subCategory"`
	ProductName     string `json:"productName"`
	Image           string `json:"image"`
	Description     string `json:"description"`
	Rate            string `json:"rate"`
	Budget          string `json:"budget"`
	AllFilter       string `json:"allFilter"`
	ProductCategory string `json:"productCategory"`
	Ranking         float64 `json:"ranking"`
}

// ParseRate converts a price string to a decimal amount. Any value that
// does not parse as a number is treated as zero. This is the single price
// conversion used by the filter, sort and display paths so they can never
// disagree about what a malformed rate is worth.
func ParseRate(rate string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(rate))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// RateValue returns the parsed rate as a float64 for range comparisons.
func (p Product) RateValue() float64 {
	f, _ := ParseRate(p.Rate).Float64()
	return f
}

// DiscountedPrice applies a percentage discount to the parsed rate.
// Discount 0 returns the original price unchanged.
func DiscountedPrice(rate string, discount int) decimal.Decimal {
	price := ParseRate(rate)
	if discount <= 0 {
		return price
	}
	factor := decimal.NewFromInt(int64(100 - discount)).Div(decimal.NewFromInt(100))
	return price.Mul(factor)
}

// FormatPrice renders a price with exactly two decimal places, the shared
// format for both on-screen display and PDF output.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// DescriptionHTML converts the stored plain-text description to HTML,
// turning literal newlines into line breaks.
func (p Product) DescriptionHTML() string {
	return strings.ReplaceAll(p.Description, "\n", "<br>")
}
