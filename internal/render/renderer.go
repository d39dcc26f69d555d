// Package render captures the catalog page as a PDF with a headless
// browser, reproducing the screen layout exactly.
package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/utsavgifts/catalogd/internal/common"
	"github.com/utsavgifts/catalogd/internal/model"
)

const (
	// renderTimeout bounds a single capture end to end.
	renderTimeout = 90 * time.Second

	// networkIdle is how long the page must be quiet before we consider
	// all product images settled.
	networkIdle = 500 * time.Millisecond

	clientNameSelector = `input[placeholder="Enter Client Name"]`
)

// Request describes one capture of the catalog page.
type Request struct {
	// BaseURL is the root of the running catalog server.
	BaseURL    string
	Criteria   model.Criteria
	ClientName string
	Discount   int
}

// Renderer drives headless browser captures. Each Render owns a fresh
// browser instance and releases it on every exit path, so a failed
// capture can never leak an OS-level browser process into the next one.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

// Launch starts a headless browser and returns it with its cleanup
// function. Shared by the renderer and the page verifier.
func Launch() (*rod.Browser, func(), error) {
	l := launcher.New().Headless(true).NoSandbox(true)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	cleanup := func() {
		_ = browser.Close()
		l.Cleanup()
	}
	return browser, cleanup, nil
}

// Render loads the catalog page with the request's filters applied,
// recompresses its images in place, and prints it to PDF. Unlike the
// vector composer, any failure here aborts the document.
func (r *Renderer) Render(ctx context.Context, req Request) ([]byte, error) {
	start := time.Now()

	target, err := PageURL(req.BaseURL, req.Criteria, req.Discount)
	if err != nil {
		return nil, err
	}

	browser, cleanup, err := Launch()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	page, err := browser.Page(proto.TargetCreateTarget{URL: target})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open page: %v", common.ErrRenderFailed, err)
	}
	defer func() { _ = page.Close() }()

	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()
	page = page.Context(ctx)

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: page load: %v", common.ErrRenderFailed, err)
	}
	// Let product images finish before recompressing them.
	page.WaitRequestIdle(networkIdle, nil, nil, nil)()

	if req.ClientName != "" {
		if err := r.fillClientName(page, req.ClientName); err != nil {
			r.logger.Warn("client name field not found, cover will show N/A", "error", err)
		}
	}

	if _, err := page.Eval(recompressScript); err != nil {
		return nil, fmt.Errorf("%w: image recompression: %v", common.ErrRenderFailed, err)
	}

	if err := page.AddStyleTag("", printCSS); err != nil {
		return nil, fmt.Errorf("%w: print stylesheet: %v", common.ErrRenderFailed, err)
	}

	stream, err := page.PDF(printSettings())
	if err != nil {
		return nil, fmt.Errorf("%w: print to pdf: %v", common.ErrRenderFailed, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: read pdf stream: %v", common.ErrRenderFailed, err)
	}

	r.logger.Info("rendered catalog page to pdf",
		"bytes", len(data),
		"duration", time.Since(start))
	return data, nil
}

func (r *Renderer) fillClientName(page *rod.Page, name string) error {
	el, err := page.Timeout(5 * time.Second).Element(clientNameSelector)
	if err != nil {
		return err
	}
	return el.Input(name)
}

func printSettings() *proto.PagePrintToPDF {
	// 24mm margins expressed in inches, matching the on-screen layout.
	margin := 24.0 / 25.4
	return &proto.PagePrintToPDF{
		PrintBackground:     true,
		PreferCSSPageSize:   true,
		DisplayHeaderFooter: false,
		MarginTop:           &margin,
		MarginBottom:        &margin,
		MarginLeft:          &margin,
		MarginRight:         &margin,
	}
}
