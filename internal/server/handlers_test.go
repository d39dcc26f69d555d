package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavgifts/catalogd/internal/model"
	"github.com/utsavgifts/catalogd/internal/service"
	"github.com/utsavgifts/catalogd/internal/session"
	"github.com/utsavgifts/catalogd/internal/sheets"
)

type stubGenerator struct {
	lastReq *service.ExportRequest
	err     error
}

func (g *stubGenerator) Generate(_ context.Context, req service.ExportRequest) ([]byte, error) {
	g.lastReq = &req
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.4 stub"), nil
}

type stubHistory struct {
	entries []model.AuditEntry
	err     error
}

func (h *stubHistory) SaveLogin(_ context.Context, entry model.AuditEntry) error {
	h.entries = append(h.entries, entry)
	return nil
}

func (h *stubHistory) RecentLogins(context.Context, int) ([]model.AuditEntry, error) {
	return h.entries, h.err
}

type spySink struct{ entries []model.AuditEntry }

func (s *spySink) Record(_ context.Context, entry model.AuditEntry) {
	s.entries = append(s.entries, entry)
}

type fixture struct {
	server  *Server
	mock    *sheets.MockClient
	gen     *stubGenerator
	history *stubHistory
	sink    *spySink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mock := sheets.NewMockClient()
	mock.Products = []model.Product{
		{ProductName: "Brass Diya Set", ProductCategory: "Decor", Occasion: "Diwali", Rate: "499", Ranking: 8},
		{ProductName: "Dry Fruit Hamper", ProductCategory: "Food", Occasion: "Diwali", Rate: "1499", Ranking: 9},
	}
	mock.Credentials["user@example.com"] = "secret"
	mock.Credentials["admin@example.com"] = "topsecret"
	mock.Admins["admin@example.com"] = true

	gen := &stubGenerator{}
	history := &stubHistory{}
	sink := &spySink{}

	srv := New(Config{Addr: ":0", SessionSecret: "test"}, Deps{
		Source:    mock,
		Creds:     mock,
		Audit:     sink,
		History:   history,
		Sessions:  session.NewMemoryStore(),
		Generator: gen,
	})
	return &fixture{server: srv, mock: mock, gen: gen, history: history, sink: sink}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(w, req)
	return w
}

// login authenticates and returns the session cookies.
func (f *fixture) login(t *testing.T, email, password string) []*http.Cookie {
	t.Helper()

	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := f.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func TestProductsEndpoint(t *testing.T) {
	f := newFixture(t)

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var products []model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, "Dry Fruit Hamper", products[0].ProductName, "rank descending by default")
}

func TestProductsEndpointFiltered(t *testing.T) {
	f := newFixture(t)

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/products?maxPrice=600", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var products []model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Brass Diya Set", products[0].ProductName)
}

func TestProductsEndpointSourceFailure(t *testing.T) {
	f := newFixture(t)
	f.mock.FetchFunc = func(context.Context) ([]model.Product, error) {
		return nil, errors.New("quota exceeded")
	}

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestLoginSuccess(t *testing.T) {
	f := newFixture(t)

	cookies := f.login(t, "admin@example.com", "topsecret")
	assert.NotEmpty(t, cookies)

	require.Len(t, f.sink.entries, 1)
	assert.Equal(t, model.AuditSuccess, f.sink.entries[0].Status)
	assert.Equal(t, "admin@example.com", f.sink.entries[0].Email)
}

func TestLoginFailure(t *testing.T) {
	f := newFixture(t)

	body := `{"email":"user@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := f.do(req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.Len(t, f.sink.entries, 1)
	assert.Equal(t, model.AuditFailed, f.sink.entries[0].Status)
}

func TestHistoryRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	f.history.entries = []model.AuditEntry{{Email: "user@example.com", Status: model.AuditSuccess, Timestamp: time.Now()}}

	// Unauthenticated.
	w := f.do(httptest.NewRequest(http.MethodGet, "/api/history", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Authenticated but not admin.
	cookies := f.login(t, "user@example.com", "secret")
	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	assert.Equal(t, http.StatusForbidden, f.do(req).Code)

	// Admin.
	cookies = f.login(t, "admin@example.com", "topsecret")
	req = httptest.NewRequest(http.MethodGet, "/api/history", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = f.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []model.AuditEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 1)
}

func TestGeneratePDFRequiresLogin(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-pdf", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusUnauthorized, f.do(req).Code)
}

func TestGeneratePDF(t *testing.T) {
	f := newFixture(t)
	cookies := f.login(t, "user@example.com", "secret")

	body := `{"clientName":"Acme Corp","discount":10,"maxPrice":600}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-pdf", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := f.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
	disposition := w.Header().Get(echo.HeaderContentDisposition)
	assert.Contains(t, disposition, "Acme_Corp_Catalog_")
	assert.Contains(t, disposition, ".pdf")

	require.NotNil(t, f.gen.lastReq)
	assert.Equal(t, "Acme Corp", f.gen.lastReq.ClientName)
	assert.Equal(t, 10, f.gen.lastReq.Discount)
	require.Len(t, f.gen.lastReq.Products, 1)
	assert.Equal(t, "Brass Diya Set", f.gen.lastReq.Products[0].ProductName)
}

func TestGeneratePDFNoMatches(t *testing.T) {
	f := newFixture(t)
	cookies := f.login(t, "user@example.com", "secret")

	body := `{"maxPrice":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-pdf", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	assert.Equal(t, http.StatusUnprocessableEntity, f.do(req).Code)
}

func TestLogEndpoint(t *testing.T) {
	f := newFixture(t)

	body := `{"status":"Success","message":"Viewed catalog"}`
	req := httptest.NewRequest(http.MethodPost, "/api/log", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := f.do(req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, f.sink.entries, 1)
	assert.Equal(t, "Viewed catalog", f.sink.entries[0].Message)
}

func TestDownloadFilename(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	assert.Equal(t, "Acme_Corp_Catalog_1700000000000.pdf", downloadFilename("Acme Corp", now))
	assert.Equal(t, "Product_Catalog_1700000000000.pdf", downloadFilename("", now))
	assert.Equal(t, "Product_Catalog_1700000000000.pdf", downloadFilename("///", now))
	assert.Equal(t, "A-1_Catalog_1700000000000.pdf", downloadFilename("  A-1!  ", now))
}
