package engine

import "github.com/utsavgifts/catalogd/internal/model"

// Facets holds the distinct values available for each filter dimension,
// used to populate the filter controls. Values keep first-seen sheet order;
// blanks are dropped.
type Facets struct {
	Categories   []string
	Themes       []string
	Occasions    []string
	ProductNames []string
	CustomTypes  []string
}

// ExtractFacets collects the unique classification values present in the
// product list.
func ExtractFacets(products []model.Product) Facets {
	return Facets{
		Categories:   unique(products, func(p model.Product) string { return p.ProductCategory }),
		Themes:       unique(products, func(p model.Product) string { return p.Theme }),
		Occasions:    unique(products, func(p model.Product) string { return p.Occasion }),
		ProductNames: unique(products, func(p model.Product) string { return p.ProductName }),
		CustomTypes:  unique(products, func(p model.Product) string { return p.CustomType }),
	}
}

func unique(products []model.Product, key func(model.Product) string) []string {
	seen := make(map[string]bool, len(products))
	values := make([]string, 0, len(products))
	for _, p := range products {
		v := key(p)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}
