package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/01moynul/schooluniforms-web/internal/api"
	"github.com/01moynul/schooluniforms-web/internal/models"
)

// Gateway is the part of the API client the cart needs.
type Gateway interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	AddCartItem(ctx context.Context, in models.AddCartItemInput) (*models.CartItem, error)
	UpdateCartItem(ctx context.Context, id int64, quantity int) (*models.CartItem, error)
	RemoveCartItem(ctx context.Context, id int64) error
}

// Cart mirrors one visitor's server-side cart. Every mutation is followed by a
// full refetch and the mirror only ever holds what the server last returned.
//
// Refetches are numbered when issued. A response is applied only if no later
// refetch has been applied already, so overlapping refetches cannot roll the
// mirror back to an older state.
type Cart struct {
	gw Gateway

	issued atomic.Uint64

	mu       sync.RWMutex
	snapshot models.Cart
	applied  uint64
	loaded   bool
	closed   bool
}

func New(gw Gateway) *Cart {
	return &Cart{gw: gw}
}

// Init loads the cart for the first time.
func (c *Cart) Init(ctx context.Context) error {
	_, err := c.Refresh(ctx)
	return err
}

// Refresh fetches the cart and applies it unless it is stale.
func (c *Cart) Refresh(ctx context.Context) (models.Cart, error) {
	seq := c.issued.Add(1)

	fetched, err := c.gw.GetCart(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			c.Clear()
		}
		return c.Snapshot(), err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return models.Cart{}, nil
	}
	if seq <= c.applied {
		log.Printf("cart: dropping stale refetch %d (already applied %d)", seq, c.applied)
		return copyCart(c.snapshot), nil
	}
	c.applied = seq
	c.snapshot = copyCart(*fetched)
	c.loaded = true
	return copyCart(c.snapshot), nil
}

// Add posts one measured garment and refetches.
func (c *Cart) Add(ctx context.Context, in models.AddCartItemInput) (models.Cart, error) {
	if _, err := c.gw.AddCartItem(ctx, in); err != nil {
		return c.Snapshot(), err
	}
	return c.Refresh(ctx)
}

// Update sets an item's quantity and refetches.
func (c *Cart) Update(ctx context.Context, itemID int64, quantity int) (models.Cart, error) {
	if _, err := c.gw.UpdateCartItem(ctx, itemID, quantity); err != nil {
		return c.Snapshot(), err
	}
	return c.Refresh(ctx)
}

// Remove deletes an item and refetches.
func (c *Cart) Remove(ctx context.Context, itemID int64) (models.Cart, error) {
	if err := c.gw.RemoveCartItem(ctx, itemID); err != nil {
		return c.Snapshot(), err
	}
	return c.Refresh(ctx)
}

// Snapshot returns a copy of the last applied cart.
func (c *Cart) Snapshot() models.Cart {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyCart(c.snapshot)
}

// Count is the header badge: the sum of item quantities.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.ItemCount()
}

// Loaded reports whether any fetch has been applied yet.
func (c *Cart) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Clear empties the mirror (after checkout or a 401) and discards every
// refetch still in flight.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.snapshot = models.Cart{}
	c.applied = c.issued.Load()
	c.mu.Unlock()
}

// Close discards the mirror; later refetches are ignored.
func (c *Cart) Close() {
	c.mu.Lock()
	c.closed = true
	c.snapshot = models.Cart{}
	c.mu.Unlock()
}

func copyCart(src models.Cart) models.Cart {
	dst := src
	if src.Items != nil {
		dst.Items = make([]models.CartItem, len(src.Items))
		copy(dst.Items, src.Items)
	}
	return dst
}
