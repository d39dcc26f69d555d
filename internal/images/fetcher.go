package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/image/draw"
)

// Rasterization limits shared by the composer and the in-page
// recompression path: oversized images are scaled into a 600x600 box and
// re-encoded as JPEG at quality 75 to keep documents small.
const (
	MaxDimension = 600
	JPEGQuality  = 75

	// fetchTimeout bounds each image download; on expiry the placeholder
	// is substituted rather than failing the document.
	fetchTimeout = 5 * time.Second

	maxBodyBytes = 20 << 20
)

// Fetcher downloads images and converts them into JPEG raster data
// suitable for vector PDF embedding.
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewFetcher creates a Fetcher. A nil client uses a default with the
// per-image timeout applied.
func NewFetcher(client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{client: client, logger: logger}
}

// FetchJPEG downloads url and returns it as JPEG bytes, downscaled into
// the bounding box if oversized. Failures of any kind return the
// placeholder raster so a single bad image never aborts a document.
func (f *Fetcher) FetchJPEG(ctx context.Context, url string) []byte {
	data, err := f.fetch(ctx, url)
	if err != nil {
		f.logger.Warn("image fetch failed, substituting placeholder", "url", url, "error", err)
		return PlaceholderJPEG()
	}
	return data
}

// Fetch is FetchJPEG without the placeholder substitution: failures are
// returned so callers that can omit the image entirely do so.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.fetch(ctx, url)
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return encodeJPEG(Downscale(img))
}

// Downscale fits img into the MaxDimension bounding box preserving aspect
// ratio. Images already within the box are returned unchanged.
func Downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= MaxDimension && h <= MaxDimension {
		return img
	}

	if w > MaxDimension {
		h = h * MaxDimension / w
		w = MaxDimension
	}
	if h > MaxDimension {
		w = w * MaxDimension / h
		h = MaxDimension
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func placeholderImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 300, 300))
	gray := color.RGBA{R: 229, G: 231, B: 235, A: 255}
	for y := 0; y < 300; y++ {
		for x := 0; x < 300; x++ {
			img.Set(x, y, gray)
		}
	}
	return img
}

// PlaceholderJPEG returns a neutral gray raster used whenever a product
// image cannot be fetched or decoded.
func PlaceholderJPEG() []byte {
	data, err := encodeJPEG(placeholderImage())
	if err != nil {
		// Encoding an in-memory RGBA image cannot fail with valid options.
		panic(err)
	}
	return data
}

// PlaceholderPNG is the same raster as PNG, served by the web layer at
// the placeholder path.
func PlaceholderPNG() []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, placeholderImage()); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
