package images

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestFetchJPEGConvertsAndDownscales(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes(t, 1200, 900))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), nil)
	data := f.FetchJPEG(context.Background(), srv.URL)

	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, MaxDimension, img.Bounds().Dx())
	assert.Equal(t, 450, img.Bounds().Dy())
}

func TestFetchJPEGSmallImageKeepsSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(pngBytes(t, 200, 100))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), nil)
	data := f.FetchJPEG(context.Background(), srv.URL)

	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestFetchJPEGFallsBackToPlaceholder(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not an image",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>not an image</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			f := NewFetcher(srv.Client(), nil)
			data := f.FetchJPEG(context.Background(), srv.URL)
			assert.Equal(t, PlaceholderJPEG(), data)
		})
	}
}

func TestFetchReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), nil)
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetchJPEGUnreachableHost(t *testing.T) {
	f := NewFetcher(nil, nil)
	data := f.FetchJPEG(context.Background(), "http://127.0.0.1:1/img.jpg")
	assert.Equal(t, PlaceholderJPEG(), data)
}

func TestDownscaleBounds(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{name: "wide image", w: 1800, h: 600, wantW: 600, wantH: 200},
		{name: "tall image", w: 300, h: 1200, wantW: 150, wantH: 600},
		{name: "within box untouched", w: 599, h: 600, wantW: 599, wantH: 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Downscale(image.NewRGBA(image.Rect(0, 0, tt.w, tt.h)))
			assert.Equal(t, tt.wantW, got.Bounds().Dx())
			assert.Equal(t, tt.wantH, got.Bounds().Dy())
		})
	}
}

func TestPlaceholderJPEGIsValid(t *testing.T) {
	img, err := jpeg.Decode(bytes.NewReader(PlaceholderJPEG()))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}
