package server

import (
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/utsavgifts/catalogd/internal/engine"
	"github.com/utsavgifts/catalogd/internal/model"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// productCard is the render-ready view of one product.
type productCard struct {
	Name          string
	Category      string
	Theme         string
	Occasion      string
	Description   template.HTML
	Image         string
	Price         string
	OriginalPrice string
	Discounted    bool
}

type pageData struct {
	Date        string
	Products    []productCard
	Facets      engine.Facets
	Criteria    model.Criteria
	NameQuery   string
	SortByPrice bool
	Discount    int
	Total       int
	PrintMode   bool
	LoadFailed  bool
}

// handleIndex renders the catalog page with the query's filter state
// already applied.
func (s *Server) handleIndex(c echo.Context) error {
	q := c.QueryParams()
	criteria := ParseCriteria(q)
	discount := ParseDiscount(q)
	sort := ParseSort(q)

	data := pageData{
		Date:        time.Now().Format("02/01/2006"),
		Criteria:    criteria,
		SortByPrice: sort.Field == model.SortByPrice,
		Discount:    discount,
		PrintMode:   q.Get("print") == "1",
	}
	if len(criteria.ProductNames) > 0 {
		data.NameQuery = criteria.ProductNames[0]
	}

	products, err := s.source.FetchProducts(c.Request().Context())
	if err != nil {
		s.logger.Error("product fetch failed", "error", err)
		data.LoadFailed = true
	} else {
		data.Facets = engine.ExtractFacets(products)
		filtered := s.engine.Apply(products, criteria, sort)
		data.Total = len(filtered)
		for _, p := range filtered {
			data.Products = append(data.Products, cardFor(p, discount))
		}
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return pageTemplate.Execute(c.Response(), data)
}

func cardFor(p model.Product, discount int) productCard {
	card := productCard{
		Name:        p.ProductName,
		Category:    p.ProductCategory,
		Theme:       p.Theme,
		Occasion:    p.Occasion,
		Description: template.HTML(p.DescriptionHTML()),
		Image:       p.Image,
	}

	price := model.ParseRate(p.Rate)
	if discount > 0 {
		card.Discounted = true
		card.OriginalPrice = FormatINR(price)
		card.Price = FormatINR(model.DiscountedPrice(p.Rate, discount))
	} else {
		card.Price = FormatINR(price)
	}
	return card
}

// FormatINR renders an amount with Indian digit grouping: the last three
// digits form one group, every group above that has two. Whole amounts
// drop the fraction.
func FormatINR(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(s, ".")
	grouped := groupIndian(intPart)
	if fracPart == "00" {
		fracPart = ""
	}

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString(grouped)
	if fracPart != "" {
		b.WriteString(".")
		b.WriteString(fracPart)
	}
	return b.String()
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}
