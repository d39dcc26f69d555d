package render

import (
	"context"
	"log/slog"

	"github.com/utsavgifts/catalogd/internal/service"
)

// Capture adapts the headless-browser renderer to the catalog generator
// interface, so deployments can select it interchangeably with the
// vector composer. The page origin is bound at construction; the
// product list in the request is ignored because the page refetches and
// filters server-side from the same criteria.
type Capture struct {
	renderer *Renderer
	baseURL  string
}

var _ service.Generator = (*Capture)(nil)

// NewCapture creates a browser-capture generator printing pages served
// from baseURL.
func NewCapture(baseURL string, logger *slog.Logger) *Capture {
	return &Capture{renderer: NewRenderer(logger), baseURL: baseURL}
}

// Generate prints the filtered catalog page to PDF.
func (c *Capture) Generate(ctx context.Context, req service.ExportRequest) ([]byte, error) {
	return c.renderer.Render(ctx, c.request(req))
}

func (c *Capture) request(req service.ExportRequest) Request {
	return Request{
		BaseURL:    c.baseURL,
		Criteria:   req.Criteria,
		ClientName: req.ClientName,
		Discount:   req.Discount,
	}
}
