package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

//
// --- Orders and payments ---
//

// GuestCheckout turns the session cart into an order. There is no
// idempotency key: calling it twice creates two order requests.
func (c *Client) GuestCheckout(ctx context.Context, in models.CheckoutInput) (*models.CheckoutResponse, error) {
	var out models.CheckoutResponse
	if err := c.do(ctx, http.MethodPost, "/checkout/guest/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrder looks an order up by its public code. A miss matches ErrNotFound.
func (c *Client) GetOrder(ctx context.Context, code string) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(code)+"/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmTailorOrder accepts an assignment through the emailed token.
func (c *Client) ConfirmTailorOrder(ctx context.Context, token string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	path := "/tailor/confirm-order/" + url.PathEscape(token) + "/"
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InitiatePayment asks for the externally hosted approval URL of an order.
func (c *Client) InitiatePayment(ctx context.Context, in models.PaymentInitiateInput) (*models.PaymentInitiation, error) {
	var out models.PaymentInitiation
	if err := c.do(ctx, http.MethodPost, "/payments/initiate/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExecutePayment completes an approved payment.
func (c *Client) ExecutePayment(ctx context.Context, in models.PaymentExecuteInput) (*models.PaymentResult, error) {
	var out models.PaymentResult
	if err := c.do(ctx, http.MethodPost, "/payments/execute/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PaymentStatus reads the state of one payment.
func (c *Client) PaymentStatus(ctx context.Context, paymentID string) (*models.PaymentResult, error) {
	query := url.Values{"payment_id": {paymentID}}
	var out models.PaymentResult
	if err := c.do(ctx, http.MethodGet, "/payments/status/", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
