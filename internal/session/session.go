package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/01moynul/schooluniforms-web/internal/api"
	"github.com/01moynul/schooluniforms-web/internal/auth"
	"github.com/01moynul/schooluniforms-web/internal/models"
)

// Gateway is the part of the API client the session needs.
type Gateway interface {
	Login(ctx context.Context, creds models.Credentials) (*models.TokenPair, error)
	Profile(ctx context.Context) (*models.User, error)
}

// Identity is the signed-in user as the views see it.
type Identity struct {
	User      models.User
	Role      string
	ExpiresAt time.Time
}

// Session holds the current identity of one visitor. Network calls are made
// without holding the lock so a 401 teardown triggered from inside a call can
// take it.
type Session struct {
	gw     Gateway
	tokens api.TokenStore

	mu       sync.RWMutex
	identity *Identity
	roleHint string
	closed   bool
}

func New(gw Gateway, tokens api.TokenStore) *Session {
	return &Session{gw: gw, tokens: tokens}
}

// Init restores the identity behind a saved token. No token, or an expired
// one, leaves the visitor signed out without contacting the API.
func (s *Session) Init(ctx context.Context) error {
	token := s.tokens.Token()
	if token == "" {
		return nil
	}

	info, err := auth.InspectToken(token)
	if err != nil {
		// Opaque token: only the API can tell.
		info = &auth.TokenInfo{}
	}
	if info.Expired(time.Now()) {
		log.Printf("session: saved token expired at %s", info.ExpiresAt.Format(time.RFC3339))
		s.HandleUnauthorized()
		return nil
	}

	return s.loadProfile(ctx, info)
}

// Login exchanges credentials for a token, persists it and loads the profile.
// roleHint is the role of the login screen used ("tailor", "delivery" or "").
func (s *Session) Login(ctx context.Context, creds models.Credentials, roleHint string) (*Identity, error) {
	// 1. --- Exchange credentials ---
	pair, err := s.gw.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if pair.Access == "" {
		return nil, errors.New("login response carried no access token")
	}

	// 2. --- Persist the token ---
	if err := s.tokens.SetToken(pair.Access); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}

	s.mu.Lock()
	s.roleHint = roleHint
	s.mu.Unlock()

	// 3. --- Resolve the identity ---
	info, err := auth.InspectToken(pair.Access)
	if err != nil {
		log.Printf("session: access token is opaque: %v", err)
		info = &auth.TokenInfo{}
	}
	if err := s.loadProfile(ctx, info); err != nil {
		return nil, err
	}
	return s.Current(), nil
}

func (s *Session) loadProfile(ctx context.Context, info *auth.TokenInfo) error {
	user, err := s.gw.Profile(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.HandleUnauthorized()
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.identity = &Identity{
		User:      *user,
		Role:      resolveRole(*user, s.roleHint),
		ExpiresAt: info.ExpiresAt,
	}
	return nil
}

// resolveRole prefers what the server says, then staff status, then the
// login screen used.
func resolveRole(user models.User, hint string) string {
	switch {
	case user.Role != "":
		return user.Role
	case user.IsStaff:
		return models.RoleAdmin
	case hint != "":
		return hint
	default:
		return models.RoleCustomer
	}
}

// Logout forgets the identity and the token.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.identity = nil
	s.roleHint = ""
	s.mu.Unlock()
	return s.tokens.ClearToken()
}

// HandleUnauthorized is the 401 teardown. The gateway has already cleared the
// token when it calls this; clearing again is harmless.
func (s *Session) HandleUnauthorized() {
	s.mu.Lock()
	s.identity = nil
	s.roleHint = ""
	s.mu.Unlock()
	if err := s.tokens.ClearToken(); err != nil {
		log.Printf("session: failed to clear token: %v", err)
	}
}

// Current returns a copy of the identity, or nil when signed out.
func (s *Session) Current() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// HasRole reports whether the visitor is signed in as role.
func (s *Session) HasRole(role string) bool {
	id := s.Current()
	return id != nil && id.Role == role
}

// Close drops the in-memory identity. The saved token is kept so the visitor
// is still signed in when they come back.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.identity = nil
	s.mu.Unlock()
}
