// Package session manages browser login sessions.
package session

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/utsavgifts/catalogd/internal/model"
)

const (
	cookieName = "catalog_session"

	// DefaultMaxAge keeps a login valid for one day.
	DefaultMaxAge = 24 * time.Hour
)

// Store reads and writes the login session attached to a request.
type Store interface {
	Get(r *http.Request) (*model.Session, error)
	Save(w http.ResponseWriter, r *http.Request, sess *model.Session) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// CookieStore implements Store on top of signed cookies.
type CookieStore struct {
	store *sessions.CookieStore
}

// NewCookieStore creates a cookie-backed session store. The secret signs
// session cookies; it must be stable across restarts or every user is
// logged out on deploy.
func NewCookieStore(secret []byte, secure bool) *CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(DefaultMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieStore{store: store}
}

// Get returns the session for the request, or an unauthenticated session
// when no valid cookie is present.
func (c *CookieStore) Get(r *http.Request) (*model.Session, error) {
	s, err := c.store.Get(r, cookieName)
	if err != nil {
		// A tampered or stale cookie decodes as a fresh session.
		return &model.Session{}, nil
	}

	sess := &model.Session{}
	if v, ok := s.Values["email"].(string); ok {
		sess.Email = v
	}
	if v, ok := s.Values["authenticated"].(bool); ok {
		sess.Authenticated = v
	}
	if v, ok := s.Values["isAdmin"].(bool); ok {
		sess.IsAdmin = v
	}
	if v, ok := s.Values["loginTime"].(int64); ok {
		sess.LoginTime = time.Unix(v, 0)
	}
	return sess, nil
}

// Save writes the session to the response.
func (c *CookieStore) Save(w http.ResponseWriter, r *http.Request, sess *model.Session) error {
	s, _ := c.store.Get(r, cookieName)
	s.Values["email"] = sess.Email
	s.Values["authenticated"] = sess.Authenticated
	s.Values["isAdmin"] = sess.IsAdmin
	s.Values["loginTime"] = sess.LoginTime.Unix()
	return s.Save(r, w)
}

// Clear expires the session cookie.
func (c *CookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	s, _ := c.store.Get(r, cookieName)
	s.Options.MaxAge = -1
	s.Values = make(map[any]any)
	return s.Save(r, w)
}
