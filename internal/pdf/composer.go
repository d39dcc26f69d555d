// Package pdf composes catalog documents as vector PDFs.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/utsavgifts/catalogd/internal/common"
	"github.com/utsavgifts/catalogd/internal/images"
	"github.com/utsavgifts/catalogd/internal/model"
	"github.com/utsavgifts/catalogd/internal/service"
)

// Page geometry in millimeters, A4 portrait.
const (
	pageMargin  = 24.0
	cardHeight  = 120.0
	cardRadius  = 3.0
	cardPadding = 8.0

	priceBoxWidth  = 60.0
	priceBoxHeight = 15.0

	imageHeight = 60.0

	// Descriptions are clamped so a long one never pushes the price box
	// out of its card.
	maxDescriptionLines = 6

	cardsPerPage = 2
)

// Composer renders catalogs directly with a PDF writer. It is the
// fallback strategy when no headless browser is available, and the
// primary strategy for CLI export.
type Composer struct {
	fetcher *images.Fetcher
	logger  *slog.Logger
	logoURL string
	now     func() time.Time
}

var _ service.Generator = (*Composer)(nil)

// NewComposer creates a Composer. logoURL may be empty to skip the cover
// logo.
func NewComposer(fetcher *images.Fetcher, logoURL string, logger *slog.Logger) *Composer {
	if fetcher == nil {
		fetcher = images.NewFetcher(nil, logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{fetcher: fetcher, logger: logger, logoURL: logoURL, now: time.Now}
}

// Generate renders the catalog document for the request.
func (c *Composer) Generate(ctx context.Context, req service.ExportRequest) ([]byte, error) {
	if len(req.Products) == 0 {
		return nil, common.ErrNoProducts
	}

	start := c.now()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	discount := model.ClampDiscount(req.Discount)
	c.coverPage(ctx, doc, tr, req, discount)

	for i, p := range req.Products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i%cardsPerPage == 0 {
			doc.AddPage()
		}
		y := pageMargin
		if i%cardsPerPage == 1 {
			_, pageH := doc.GetPageSize()
			y = pageH/2 + 10
		}
		c.productCard(ctx, doc, tr, p, i, y, discount)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRenderFailed, err)
	}

	c.logger.Info("composed catalog pdf",
		"products", len(req.Products),
		"bytes", buf.Len(),
		"duration", c.now().Sub(start))
	return buf.Bytes(), nil
}

func (c *Composer) coverPage(ctx context.Context, doc *fpdf.Fpdf, tr func(string) string, req service.ExportRequest, discount int) {
	doc.AddPage()
	pageW, _ := doc.GetPageSize()
	contentW := pageW - 2*pageMargin

	y := 50.0
	if c.logoURL != "" {
		// An unavailable logo is left off the cover rather than replaced
		// with the placeholder raster.
		if data, err := c.fetcher.Fetch(ctx, c.logoURL); err != nil {
			c.logger.Warn("cover logo fetch failed, skipping logo", "url", c.logoURL, "error", err)
		} else {
			name := "cover-logo"
			doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "JPG"}, bytes.NewReader(data))
			doc.ImageOptions(name, (pageW-40)/2, y, 40, 0, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
			y += 50
		}
	}

	doc.SetFont("Helvetica", "B", 28)
	doc.SetTextColor(59, 130, 246)
	doc.SetXY(pageMargin, y)
	doc.CellFormat(contentW, 12, "Product Catalog", "", 1, "C", false, 0, "")
	y += 18

	doc.SetFont("Helvetica", "", 11)
	doc.SetTextColor(71, 85, 105)
	lines := c.coverLines(req, discount)
	for _, line := range lines {
		doc.SetXY(pageMargin, y)
		doc.CellFormat(contentW, 7, tr(line), "", 1, "C", false, 0, "")
		y += 8
	}
}

// coverLines builds the summary block under the cover title.
func (c *Composer) coverLines(req service.ExportRequest, discount int) []string {
	client := strings.TrimSpace(req.ClientName)
	if client == "" {
		client = "N/A"
	}

	lines := []string{
		c.now().Format("02/01/2006"),
		"Client: " + client,
	}
	if v := strings.Join(req.Criteria.Categories, ", "); v != "" {
		lines = append(lines, "Categories: "+v)
	}
	if v := strings.Join(req.Criteria.Themes, ", "); v != "" {
		lines = append(lines, "Themes: "+v)
	}
	if v := strings.Join(req.Criteria.Occasions, ", "); v != "" {
		lines = append(lines, "Occasions: "+v)
	}
	lines = append(lines, fmt.Sprintf("Price Range: Rs.%.0f - Rs.%.0f",
		req.Criteria.Price.Min, req.Criteria.Price.Max))
	if discount > 0 {
		lines = append(lines, fmt.Sprintf("Discount Applied: %d%%", discount))
	}
	return lines
}

func (c *Composer) productCard(ctx context.Context, doc *fpdf.Fpdf, tr func(string) string, p model.Product, index int, y float64, discount int) {
	pageW, _ := doc.GetPageSize()
	x := pageMargin
	w := pageW - 2*pageMargin
	halfW := w / 2

	// Card shell with an offset shadow.
	doc.SetFillColor(203, 213, 225)
	doc.RoundedRect(x+1.5, y+1.5, w, cardHeight, cardRadius, "1234", "F")
	doc.SetFillColor(255, 255, 255)
	doc.SetDrawColor(226, 232, 240)
	doc.RoundedRect(x, y, w, cardHeight, cardRadius, "1234", "FD")

	textY := y + cardPadding
	doc.SetFont("Helvetica", "B", 14)
	doc.SetTextColor(30, 41, 59)
	doc.SetXY(x+cardPadding, textY)
	doc.CellFormat(w-2*cardPadding, 7, tr(displayName(p)), "", 1, "L", false, 0, "")
	textY += 8

	if meta := metaLine(p); meta != "" {
		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(100, 116, 139)
		doc.SetXY(x+cardPadding, textY)
		doc.CellFormat(w-2*cardPadding, 5, tr(meta), "", 1, "L", false, 0, "")
	}
	textY += 8

	// Left half: description. Right half: image.
	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(51, 65, 85)
	doc.SetXY(x+cardPadding, textY)
	doc.CellFormat(halfW-2*cardPadding, 5, "Description", "", 1, "L", false, 0, "")
	descY := textY + 6

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(71, 85, 105)
	descW := halfW - 2*cardPadding
	descLines := clampDescription(doc.SplitText(tr(StripHTML(p.Description)), descW))
	for _, line := range descLines {
		doc.SetXY(x+cardPadding, descY)
		doc.CellFormat(descW, 4.5, line, "", 1, "L", false, 0, "")
		descY += 4.5
	}

	c.cardImage(ctx, doc, p, index, x+halfW+cardPadding, textY, halfW-3*cardPadding)

	c.priceBox(doc, p, x+(w-priceBoxWidth)/2, y+cardHeight-priceBoxHeight-cardPadding, discount)
}

// cardImage draws the product image fitted into a box of the given width
// and the fixed card image height.
func (c *Composer) cardImage(ctx context.Context, doc *fpdf.Fpdf, p model.Product, index int, x, y, boxW float64) {
	data := c.fetcher.FetchJPEG(ctx, p.Image)
	name := fmt.Sprintf("product-%d", index)
	info := doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "JPG"}, bytes.NewReader(data))
	if doc.Err() {
		return
	}

	iw, ih := boxW, imageHeight
	if info.Width() > 0 && info.Height() > 0 {
		ratio := info.Width() / info.Height()
		if iw/ih > ratio {
			iw = ih * ratio
		} else {
			ih = iw / ratio
		}
	}
	// Center inside the box.
	doc.ImageOptions(name, x+(boxW-iw)/2, y+(imageHeight-ih)/2, iw, ih, false,
		fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
}

func (c *Composer) priceBox(doc *fpdf.Fpdf, p model.Product, x, y float64, discount int) {
	doc.SetFillColor(255, 251, 235)
	doc.RoundedRect(x, y, priceBoxWidth, priceBoxHeight, 2, "1234", "F")
	doc.SetTextColor(146, 64, 14)

	price := model.ParseRate(p.Rate)
	if discount > 0 {
		original := "Rs." + model.FormatPrice(price)
		doc.SetFont("Helvetica", "", 8)
		origW := doc.GetStringWidth(original)
		origX := x + (priceBoxWidth-origW)/2
		doc.SetXY(x, y+1.5)
		doc.CellFormat(priceBoxWidth, 4, original, "", 1, "C", false, 0, "")
		doc.SetDrawColor(146, 64, 14)
		doc.Line(origX, y+3.5, origX+origW, y+3.5)

		discounted := model.DiscountedPrice(p.Rate, discount)
		doc.SetFont("Helvetica", "B", 11)
		doc.SetXY(x, y+6)
		doc.CellFormat(priceBoxWidth, 6,
			fmt.Sprintf("Rs.%s (%d%% off)", model.FormatPrice(discounted), discount),
			"", 1, "C", false, 0, "")
	} else {
		doc.SetFont("Helvetica", "B", 12)
		doc.SetXY(x, y+4)
		doc.CellFormat(priceBoxWidth, 7, "Rs."+model.FormatPrice(price), "", 1, "C", false, 0, "")
	}

	doc.SetFont("Helvetica", "", 8)
	doc.SetXY(x, y+priceBoxHeight+1)
	doc.CellFormat(priceBoxWidth, 4, "+ GST", "", 1, "C", false, 0, "")
}

// clampDescription cuts overflowing description lines. The cut is
// silent: no ellipsis or other marker is appended.
func clampDescription(lines []string) []string {
	if len(lines) > maxDescriptionLines {
		return lines[:maxDescriptionLines]
	}
	return lines
}

// displayName falls back to "N/A" for products whose name cell is blank.
func displayName(p model.Product) string {
	if name := strings.TrimSpace(p.ProductName); name != "" {
		return name
	}
	return "N/A"
}

// metaLine joins the card's category and theme attributes.
func metaLine(p model.Product) string {
	var parts []string
	if p.ProductCategory != "" {
		parts = append(parts, "Category: "+p.ProductCategory)
	}
	if p.Theme != "" {
		parts = append(parts, "Theme: "+p.Theme)
	}
	return strings.Join(parts, " • ")
}
