// Package engine implements the product filtering, sorting and truncation
// pipeline. Apply is a pure function over the fetched product list: it never
// mutates its input and always returns a freshly allocated view.
package engine

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/utsavgifts/catalogd/internal/model"
)

// DefaultMaxResults caps filtered views for display and export. The cap
// is a presentation limit, not a data correctness boundary; results
// beyond it are dropped.
const DefaultMaxResults = 30

// Options configures an Engine.
type Options struct {
	// MaxResults overrides the result cap. Zero means DefaultMaxResults.
	MaxResults int
	Logger     *slog.Logger
}

// Engine derives bounded, ordered product views from filter criteria.
type Engine struct {
	logger     *slog.Logger
	maxResults int
}

// New creates an Engine.
func New(opts Options) *Engine {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{maxResults: maxResults, logger: logger}
}

// Apply filters products by criteria, orders them by the sort spec and
// truncates to the configured cap. The sort is stable: records with equal
// keys keep their relative input order. An empty input short-circuits to
// an empty result.
func (e *Engine) Apply(products []model.Product, criteria model.Criteria, spec model.SortSpec) []model.Product {
	if len(products) == 0 {
		return []model.Product{}
	}

	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if matches(p, criteria) {
			filtered = append(filtered, p)
		}
	}

	sortProducts(filtered, spec)

	if len(filtered) > e.maxResults {
		e.logger.Debug("truncating filtered view",
			"matched", len(filtered),
			"cap", e.maxResults)
		filtered = filtered[:e.maxResults]
	}

	return filtered
}

func matches(p model.Product, c model.Criteria) bool {
	if !c.Price.Contains(p.RateValue()) {
		return false
	}
	if len(c.Categories) > 0 && !contains(c.Categories, p.ProductCategory) {
		return false
	}
	if len(c.Themes) > 0 && !contains(c.Themes, p.Theme) {
		return false
	}
	if len(c.Occasions) > 0 && !contains(c.Occasions, p.Occasion) {
		return false
	}
	if len(c.CustomTypes) > 0 && !contains(c.CustomTypes, p.CustomType) {
		return false
	}
	// Product names match by case-insensitive substring, not exact value.
	if len(c.ProductNames) > 0 && !nameMatches(c.ProductNames, p.ProductName) {
		return false
	}
	return true
}

func contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

func nameMatches(selected []string, productName string) bool {
	lower := strings.ToLower(productName)
	for _, name := range selected {
		if strings.Contains(lower, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

func sortProducts(products []model.Product, spec model.SortSpec) {
	switch spec.Field {
	case model.SortByPrice:
		sort.SliceStable(products, func(i, j int) bool {
			a, b := products[i].RateValue(), products[j].RateValue()
			if spec.Order == model.Ascending {
				return a < b
			}
			return a > b
		})
	default:
		// Rank ordering; missing rankings compare as zero.
		sort.SliceStable(products, func(i, j int) bool {
			if spec.Order == model.Ascending {
				return products[i].Ranking < products[j].Ranking
			}
			return products[i].Ranking > products[j].Ranking
		})
	}
}
