package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/utsavgifts/catalogd/internal/images"
	"github.com/utsavgifts/catalogd/internal/model"
)

// Product tab column positions. Column A holds an internal serial and is
// not consumed.
const (
	colOccasion    = 1
	colCustomType  = 2
	colTheme       = 3
	colSubCategory = 4
	colProductName = 5
	colImage       = 6
	colDescription = 7
	colRate        = 8
	colBudget      = 9
	colAllFilter   = 10
	colCategory    = 11
	colRanking     = 13

	// minRowWidth is the minimum column count for a usable product row.
	// Shorter rows are skipped rather than failing the fetch, which keeps
	// the adapter tolerant of column-order drift and trailing blanks.
	minRowWidth = 9
)

// FetchProducts reads the product tab and returns typed records in sheet
// order. The header row and malformed rows are skipped silently.
func (c *Client) FetchProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := c.values(ctx, c.config.ProductTab)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	if len(rows) <= 1 {
		c.logger.Warn("product tab is empty", "tab", c.config.ProductTab)
		return []model.Product{}, nil
	}

	products := make([]model.Product, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		p, ok := rowToProduct(row)
		if !ok {
			skipped++
			continue
		}
		products = append(products, p)
	}

	c.logger.Info("fetched products",
		"tab", c.config.ProductTab,
		"count", len(products),
		"skipped", skipped)

	return products, nil
}

// rowToProduct validates and converts a raw sheet row into a typed
// Product. Raw untyped rows never flow past this boundary.
func rowToProduct(row []any) (model.Product, bool) {
	if len(row) < minRowWidth {
		return model.Product{}, false
	}

	rate := cell(row, colRate)
	if strings.TrimSpace(rate) == "" {
		rate = "0"
	}
	budget := cell(row, colBudget)
	if strings.TrimSpace(budget) == "" {
		budget = "0"
	}

	return model.Product{
		Occasion:        cell(row, colOccasion),
		CustomType:      cell(row, colCustomType),
		Industry:        cell(row, colCustomType),
		Theme:           cell(row, colTheme),
		SubCategory:     cell(row, colSubCategory),
		ProductName:     cell(row, colProductName),
		Image:           images.Resolve(cell(row, colImage)),
		Description:     cell(row, colDescription),
		Rate:            rate,
		Budget:          budget,
		AllFilter:       cell(row, colAllFilter),
		ProductCategory: cell(row, colCategory),
		Ranking:         parseRanking(cell(row, colRanking)),
	}, true
}

func parseRanking(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return f
}
