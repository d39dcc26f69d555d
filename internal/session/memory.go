package session

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/utsavgifts/catalogd/internal/model"
)

// MemoryStore keeps one session per client cookie in memory. It exists
// for tests; production uses CookieStore.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	nextID   int
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*model.Session)}
}

// Get returns the session identified by the request cookie.
func (m *MemoryStore) Get(r *http.Request) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := r.Cookie(cookieName)
	if err != nil {
		return &model.Session{}, nil
	}
	if sess, ok := m.sessions[c.Value]; ok {
		copied := *sess
		return &copied, nil
	}
	return &model.Session{}, nil
}

// Save stores the session and sets the identifying cookie.
func (m *MemoryStore) Save(w http.ResponseWriter, r *http.Request, sess *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := ""
	if c, err := r.Cookie(cookieName); err == nil {
		id = c.Value
	}
	if id == "" || m.sessions[id] == nil {
		m.nextID++
		id = "mem-" + strconv.Itoa(m.nextID)
	}

	copied := *sess
	m.sessions[id] = &copied
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: id, Path: "/", HttpOnly: true})
	return nil
}

// Clear removes the session and expires the cookie.
func (m *MemoryStore) Clear(w http.ResponseWriter, r *http.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, err := r.Cookie(cookieName); err == nil {
		delete(m.sessions, c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1})
	return nil
}
