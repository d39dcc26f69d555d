package render

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavgifts/catalogd/internal/model"
)

func TestPageURL(t *testing.T) {
	criteria := model.Criteria{
		Price:      model.PriceRange{Min: 500, Max: 1500},
		Categories: []string{"Decor", "Wellness"},
		Themes:     []string{"Traditional"},
	}

	raw, err := PageURL("http://127.0.0.1:8080", criteria, 10)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "500", q.Get("minPrice"))
	assert.Equal(t, "1500", q.Get("maxPrice"))
	assert.Equal(t, []string{"Decor", "Wellness"}, q["category"])
	assert.Equal(t, []string{"Traditional"}, q["theme"])
	assert.Equal(t, "10", q.Get("discount"))
	assert.Equal(t, "1", q.Get("print"))
}

func TestPageURLDefaults(t *testing.T) {
	raw, err := PageURL("http://127.0.0.1:8080", model.DefaultCriteria(), 0)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "0", q.Get("minPrice"))
	assert.Equal(t, "5000", q.Get("maxPrice"))
	assert.Empty(t, q.Get("discount"))
	assert.Empty(t, q["category"])
}

func TestPageURLClampsDiscount(t *testing.T) {
	raw, err := PageURL("http://127.0.0.1:8080", model.DefaultCriteria(), 90)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "30", u.Query().Get("discount"))
}

func TestPrintCSSKeepsCardsIntact(t *testing.T) {
	assert.Contains(t, printCSS, "break-inside: avoid")
	assert.Contains(t, printCSS, "page-break-after: always")
	assert.Contains(t, printCSS, "min-height: 72px")
	assert.Contains(t, printCSS, "size: A4")
}
