package images

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/utsavgifts/catalogd/internal/model"
)

// Preload warms the HTTP cache for every resolved product image ahead of
// PDF generation. It is strictly best-effort: failures are swallowed and
// never block catalog display or export.
func Preload(ctx context.Context, client *http.Client, products []model.Product, logger *slog.Logger) {
	PreloadProgress(ctx, client, products, logger, nil)
}

// PreloadProgress is Preload with a per-image completion callback, used
// by the CLI to drive a progress bar. onImage may be nil.
func PreloadProgress(ctx context.Context, client *http.Client, products []model.Product, logger *slog.Logger, onImage func()) {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	var wg sync.WaitGroup
	for _, p := range products {
		url := p.Image
		if url == "" || url == PlaceholderPath {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			warm(ctx, client, url, logger)
			if onImage != nil {
				onImage()
			}
		}()
	}
	wg.Wait()
}

func warm(ctx context.Context, client *http.Client, url string, logger *slog.Logger) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return
	}

	resp, err := client.Do(req)
	if err != nil {
		logger.Debug("image preload failed", "url", url, "error", err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	// Drain so the transport can reuse the connection and the cache warms.
	_, _ = io.Copy(io.Discard, resp.Body)
}
