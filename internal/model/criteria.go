package model

// Price filter bounds and the discount ceiling exposed to users.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 5000
	MaxDiscount     = 30
)

// SortField selects which product attribute ordering is based on.
type SortField string

// Supported sort fields.
const (
	SortByRank  SortField = "rank"
	SortByPrice SortField = "price"
)

// SortOrder selects ascending or descending ordering.
type SortOrder string

// Supported sort orders.
const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// SortSpec describes the active ordering. The zero value is not valid;
// use DefaultSort.
type SortSpec struct {
	Field SortField
	Order SortOrder
}

// DefaultSort is rank-descending, the ordering shown on first load.
func DefaultSort() SortSpec {
	return SortSpec{Field: SortByRank, Order: Descending}
}

// PriceRange is an inclusive [Min, Max] interval over parsed rates.
type PriceRange struct {
	Min float64
	Max float64
}

// FullPriceRange covers every displayable price.
func FullPriceRange() PriceRange {
	return PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice}
}

// Contains reports whether v lies within the inclusive interval.
func (r PriceRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// IsDefault reports whether the range equals the full default interval.
func (r PriceRange) IsDefault() bool {
	return r.Min == DefaultMinPrice && r.Max == DefaultMaxPrice
}

// Criteria is the combined set of active filter constraints. An empty
// selection slice means "no restriction" for that dimension, never
// "match nothing".
type Criteria struct {
	Price        PriceRange
	Categories   []string
	Themes       []string
	Occasions    []string
	ProductNames []string
	CustomTypes  []string
}

// DefaultCriteria returns criteria that match every product.
func DefaultCriteria() Criteria {
	return Criteria{Price: FullPriceRange()}
}

// Active reports whether any constraint narrows the result set.
func (c Criteria) Active() bool {
	return !c.Price.IsDefault() ||
		len(c.Categories) > 0 ||
		len(c.Themes) > 0 ||
		len(c.Occasions) > 0 ||
		len(c.ProductNames) > 0 ||
		len(c.CustomTypes) > 0
}

// ClampDiscount restricts a discount percentage to the [0, MaxDiscount]
// interval, the same clamping the input controls apply.
func ClampDiscount(discount int) int {
	if discount < 0 {
		return 0
	}
	if discount > MaxDiscount {
		return MaxDiscount
	}
	return discount
}
