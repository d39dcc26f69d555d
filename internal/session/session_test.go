package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavgifts/catalogd/internal/model"
)

// roundTrip saves a session, copies the response cookies onto a fresh
// request, and reads the session back, the way a browser would.
func roundTrip(t *testing.T, store Store, sess *model.Session) *model.Session {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	require.NoError(t, store.Save(w, r, sess))

	next := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	got, err := store.Get(next)
	require.NoError(t, err)
	return got
}

func testStoreRoundTrip(t *testing.T, store Store) {
	t.Helper()

	login := time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC)
	got := roundTrip(t, store, &model.Session{
		Email:         "admin@example.com",
		Authenticated: true,
		IsAdmin:       true,
		LoginTime:     login,
	})

	assert.Equal(t, "admin@example.com", got.Email)
	assert.True(t, got.Authenticated)
	assert.True(t, got.IsAdmin)
	assert.True(t, got.LoginTime.Equal(login))
}

func TestCookieStoreRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, NewCookieStore([]byte("test-secret-key"), false))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, NewMemoryStore())
}

func TestGetWithoutCookie(t *testing.T) {
	for name, store := range map[string]Store{
		"cookie": NewCookieStore([]byte("test-secret-key"), false),
		"memory": NewMemoryStore(),
	} {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			got, err := store.Get(r)
			require.NoError(t, err)
			assert.False(t, got.Authenticated)
			assert.Empty(t, got.Email)
		})
	}
}

func TestCookieStoreTamperedCookie(t *testing.T) {
	store := NewCookieStore([]byte("test-secret-key"), false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "catalog_session", Value: "not-a-valid-session"})

	got, err := store.Get(r)
	require.NoError(t, err)
	assert.False(t, got.Authenticated)
}

func TestClearLogsOut(t *testing.T) {
	store := NewMemoryStore()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	require.NoError(t, store.Save(w, r, &model.Session{Email: "user@example.com", Authenticated: true}))

	logout := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	for _, c := range w.Result().Cookies() {
		logout.AddCookie(c)
	}
	lw := httptest.NewRecorder()
	require.NoError(t, store.Clear(lw, logout))

	after := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	for _, c := range w.Result().Cookies() {
		after.AddCookie(c)
	}
	got, err := store.Get(after)
	require.NoError(t, err)
	assert.False(t, got.Authenticated)
}
