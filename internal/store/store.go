package store

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
)

// ErrNotFound is returned by Load and LoadCookies when nothing is saved for
// the visitor.
var ErrNotFound = errors.New("store: not found")

// Store persists each visitor's bearer token so it survives a restart of the
// web process, the way a browser's local storage survives a page reload.
type Store interface {
	Load(ctx context.Context, visitorID string) (string, error)
	Save(ctx context.Context, visitorID, token string) error
	Delete(ctx context.Context, visitorID string) error

	// LoadCookies returns the visitor's saved API cookies, or ErrNotFound.
	LoadCookies(ctx context.Context, visitorID string) ([]*http.Cookie, error)
	SaveCookies(ctx context.Context, visitorID string, cookies []*http.Cookie) error
}

// MemoryStore keeps tokens in process memory. It is the default when no
// token database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	tokens  map[string]string
	cookies map[string][]*http.Cookie
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens:  make(map[string]string),
		cookies: make(map[string][]*http.Cookie),
	}
}

func (m *MemoryStore) Load(_ context.Context, visitorID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	token, ok := m.tokens[visitorID]
	if !ok {
		return "", ErrNotFound
	}
	return token, nil
}

func (m *MemoryStore) Save(_ context.Context, visitorID, token string) error {
	m.mu.Lock()
	m.tokens[visitorID] = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, visitorID string) error {
	m.mu.Lock()
	delete(m.tokens, visitorID)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) LoadCookies(_ context.Context, visitorID string) ([]*http.Cookie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cookies, ok := m.cookies[visitorID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyCookies(cookies), nil
}

func (m *MemoryStore) SaveCookies(_ context.Context, visitorID string, cookies []*http.Cookie) error {
	m.mu.Lock()
	m.cookies[visitorID] = copyCookies(cookies)
	m.mu.Unlock()
	return nil
}

func copyCookies(cookies []*http.Cookie) []*http.Cookie {
	out := make([]*http.Cookie, len(cookies))
	for i, ck := range cookies {
		cp := *ck
		out[i] = &cp
	}
	return out
}

// VisitorTokens binds a Store to one visitor and satisfies the gateway's
// TokenStore. Reads are served from memory; writes go through to the store.
type VisitorTokens struct {
	store     Store
	visitorID string

	mu    sync.RWMutex
	token string
}

// Bind loads the visitor's saved token (if any) and returns the binding.
func Bind(ctx context.Context, s Store, visitorID string) *VisitorTokens {
	vt := &VisitorTokens{store: s, visitorID: visitorID}
	token, err := s.Load(ctx, visitorID)
	switch {
	case err == nil:
		vt.token = token
	case !errors.Is(err, ErrNotFound):
		log.Printf("store: could not load token for visitor %s: %v", visitorID, err)
	}
	return vt
}

func (v *VisitorTokens) Token() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.token
}

func (v *VisitorTokens) SetToken(token string) error {
	v.mu.Lock()
	v.token = token
	v.mu.Unlock()

	if token == "" {
		return v.store.Delete(context.Background(), v.visitorID)
	}
	return v.store.Save(context.Background(), v.visitorID, token)
}

func (v *VisitorTokens) ClearToken() error {
	return v.SetToken("")
}
