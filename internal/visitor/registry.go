package visitor

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/01moynul/schooluniforms-web/internal/api"
	"github.com/01moynul/schooluniforms-web/internal/carousel"
	"github.com/01moynul/schooluniforms-web/internal/cart"
	"github.com/01moynul/schooluniforms-web/internal/session"
	"github.com/01moynul/schooluniforms-web/internal/store"
)

// Options configures a Registry.
type Options struct {
	BaseURL          string
	HTTPClient       *http.Client
	Tokens           store.Store // bearer tokens and API cookies, per visitor
	CarouselInterval time.Duration
	IdleTimeout      time.Duration
}

type entry struct {
	v     *Visitor
	err   error
	ready chan struct{}
}

// Registry owns every live Visitor, keyed by the id in the visitor cookie.
type Registry struct {
	opts Options
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

func NewRegistry(opts Options) *Registry {
	if opts.Tokens == nil {
		opts.Tokens = store.NewMemoryStore()
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 30 * time.Minute
	}
	return &Registry{
		opts:    opts,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Get returns the visitor for id, creating and initialising it when it does
// not exist. An empty or malformed id gets a fresh one; the returned
// visitor's ID is what the cookie must hold.
func (r *Registry) Get(ctx context.Context, id string) (*Visitor, error) {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	// 1. --- Existing (or being created by another request) ---
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok {
		e = &entry{ready: make(chan struct{})}
		r.entries[id] = e
	}
	r.mu.Unlock()

	if ok {
		select {
		case <-e.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if e.err != nil {
			return nil, e.err
		}
		e.v.touch(r.now())
		return e.v, nil
	}

	// 2. --- Create ---
	v, err := r.create(id)
	if err != nil {
		r.mu.Lock()
		delete(r.entries, id)
		r.mu.Unlock()
		e.err = err
		close(e.ready)
		return nil, err
	}

	// 3. --- Initialise session and cart before anyone else sees it ---
	if err := v.Session.Init(ctx); err != nil {
		log.Printf("visitor %s: session init: %v", id, err)
	}
	if err := v.Cart.Init(ctx); err != nil {
		log.Printf("visitor %s: cart init: %v", id, err)
	}
	e.v = v
	close(e.ready)
	return v, nil
}

func (r *Registry) create(id string) (*Visitor, error) {
	v := &Visitor{ID: id, lastSeen: r.now()}
	v.ctx, v.cancel = context.WithCancel(context.Background())

	baseURL := r.opts.BaseURL
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}
	tokens := store.Bind(v.ctx, r.opts.Tokens, id)
	jar, err := store.NewJar(v.ctx, r.opts.Tokens, id, baseURL)
	if err != nil {
		v.cancel()
		return nil, err
	}

	var opts []api.Option
	if r.opts.HTTPClient != nil {
		opts = append(opts, api.WithHTTPClient(r.opts.HTTPClient))
	}
	opts = append(opts,
		api.WithCookieJar(jar),
		api.WithTokenStore(tokens),
		api.WithUnauthorizedHandler(v.handleUnauthorized),
	)

	client, err := api.NewClient(baseURL, opts...)
	if err != nil {
		v.cancel()
		return nil, err
	}

	v.API = client
	v.Session = session.New(client, tokens)
	v.Cart = cart.New(client)
	v.Carousel = carousel.New(nil, r.opts.CarouselInterval)
	return v, nil
}

// Len is the number of live visitors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep closes every visitor idle for longer than the idle timeout and
// returns how many were closed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.opts.IdleTimeout)

	var idle []*Visitor
	r.mu.Lock()
	for id, e := range r.entries {
		select {
		case <-e.ready:
		default:
			continue
		}
		if e.v != nil && e.v.idleSince().Before(cutoff) {
			idle = append(idle, e.v)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, v := range idle {
		v.Close()
	}
	return len(idle)
}

// CloseAll closes every visitor; used at shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range entries {
		<-e.ready
		if e.v != nil {
			e.v.Close()
		}
	}
}
