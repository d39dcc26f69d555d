package server

import (
	"net/url"
	"strconv"

	"github.com/utsavgifts/catalogd/internal/model"
)

// ParseCriteria decodes the filter state from query parameters. Unknown
// or malformed values fall back to the defaults rather than erroring, so
// a hand-edited URL still renders a page.
func ParseCriteria(q url.Values) model.Criteria {
	c := model.DefaultCriteria()

	if v := q.Get("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.Price.Min = f
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= c.Price.Min {
			c.Price.Max = f
		}
	}
	c.Categories = nonEmpty(q["category"])
	c.Themes = nonEmpty(q["theme"])
	c.Occasions = nonEmpty(q["occasion"])
	c.ProductNames = nonEmpty(q["name"])
	c.CustomTypes = nonEmpty(q["customType"])
	return c
}

// ParseSort decodes the sort selection, defaulting to rank descending.
func ParseSort(q url.Values) model.SortSpec {
	spec := model.DefaultSort()
	switch q.Get("sort") {
	case "price":
		spec.Field = model.SortByPrice
		spec.Order = model.Ascending
	case "rank", "":
	default:
		return spec
	}
	switch q.Get("order") {
	case "asc":
		spec.Order = model.Ascending
	case "desc":
		spec.Order = model.Descending
	}
	return spec
}

// ParseDiscount decodes and clamps the discount percentage.
func ParseDiscount(q url.Values) int {
	v, err := strconv.Atoi(q.Get("discount"))
	if err != nil {
		return 0
	}
	return model.ClampDiscount(v)
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
