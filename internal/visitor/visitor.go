package visitor

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/01moynul/schooluniforms-web/internal/api"
	"github.com/01moynul/schooluniforms-web/internal/carousel"
	"github.com/01moynul/schooluniforms-web/internal/cart"
	"github.com/01moynul/schooluniforms-web/internal/models"
	"github.com/01moynul/schooluniforms-web/internal/session"
)

// Draft is the first step of the measurement form, kept until the second
// step is submitted.
type Draft struct {
	ProductID int64
	Profile   models.StudentProfile
}

// Visitor is everything the web client holds for one browser: its own API
// client (with its own backend cookies), the session, the cart mirror and
// the home-page carousel.
type Visitor struct {
	ID       string
	API      *api.Client
	Session  *session.Session
	Cart     *cart.Cart
	Carousel *carousel.Carousel

	ctx    context.Context
	cancel context.CancelFunc

	featured singleflight.Group

	mu             sync.Mutex
	lastSeen       time.Time
	draft          *Draft
	featuredLoaded bool
	closed         bool
}

// Context lives until the visitor is closed.
func (v *Visitor) Context() context.Context { return v.ctx }

func (v *Visitor) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

func (v *Visitor) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// SetDraft remembers the student profile entered for a product.
func (v *Visitor) SetDraft(d Draft) {
	v.mu.Lock()
	v.draft = &d
	v.mu.Unlock()
}

// Draft returns the saved profile for productID, if any.
func (v *Visitor) Draft(productID int64) (Draft, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.draft == nil || v.draft.ProductID != productID {
		return Draft{}, false
	}
	return *v.draft, true
}

func (v *Visitor) ClearDraft() {
	v.mu.Lock()
	v.draft = nil
	v.mu.Unlock()
}

// EnsureFeatured loads the featured products into the carousel the first
// time it is called. Concurrent first calls share one load.
func (v *Visitor) EnsureFeatured(ctx context.Context) error {
	v.mu.Lock()
	loaded := v.featuredLoaded
	v.mu.Unlock()
	if loaded {
		return nil
	}

	_, err, _ := v.featured.Do("featured", func() (any, error) {
		products, err := carousel.LoadFeatured(ctx, v.API)
		if err != nil {
			return nil, err
		}
		v.Carousel.SetProducts(products)
		v.mu.Lock()
		v.featuredLoaded = true
		v.mu.Unlock()
		return nil, nil
	})
	return err
}

// ReloadFeatured forgets the featured products so the next EnsureFeatured
// draws a fresh shuffle.
func (v *Visitor) ReloadFeatured() {
	v.mu.Lock()
	v.featuredLoaded = false
	v.mu.Unlock()
}

// handleUnauthorized runs after the gateway saw a 401.
func (v *Visitor) handleUnauthorized() {
	v.Session.HandleUnauthorized()
	v.Cart.Clear()
}

// Close stops autoplay and tears down the state containers.
func (v *Visitor) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.draft = nil
	v.mu.Unlock()

	v.cancel()
	v.Carousel.Stop()
	v.Cart.Close()
	v.Session.Close()
}
