package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/utsavgifts/catalogd/internal/model"
)

func TestPreloadWarmsEveryResolvedImage(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("img"))
	}))
	defer srv.Close()

	products := []model.Product{
		{ProductName: "a", Image: srv.URL + "/a.jpg"},
		{ProductName: "b", Image: srv.URL + "/b.jpg"},
		{ProductName: "placeholder", Image: PlaceholderPath},
		{ProductName: "missing", Image: ""},
	}

	Preload(context.Background(), srv.Client(), products, nil)

	assert.Equal(t, int64(2), hits.Load(), "placeholder and empty images are skipped")
}

func TestPreloadSwallowsFailures(t *testing.T) {
	products := []model.Product{
		{ProductName: "dead", Image: "http://127.0.0.1:1/gone.jpg"},
	}

	// Must return without error or panic.
	Preload(context.Background(), nil, products, nil)
}
