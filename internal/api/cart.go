package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

//
// --- Cart endpoints ---
//

// GetCart returns the server-resident cart of this visitor's backend session.
func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {
	var out models.Cart
	if err := c.do(ctx, http.MethodGet, "/cart/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddCartItem posts one measured garment.
func (c *Client) AddCartItem(ctx context.Context, in models.AddCartItemInput) (*models.CartItem, error) {
	var out models.CartItem
	if err := c.do(ctx, http.MethodPost, "/cart/add/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCartItem sets the quantity of one cart item.
func (c *Client) UpdateCartItem(ctx context.Context, id int64, quantity int) (*models.CartItem, error) {
	var out models.CartItem
	in := models.UpdateCartItemInput{Quantity: quantity}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/cart/update/%d/", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveCartItem deletes one cart item.
func (c *Client) RemoveCartItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/remove/%d/", id), nil, nil, nil)
}
