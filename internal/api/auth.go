package api

import (
	"context"
	"net/http"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

//
// --- Auth endpoints ---
//

// Login exchanges credentials for a token pair (POST /token/).
// Storing the token is the session container's job.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.TokenPair, error) {
	var out models.TokenPair
	if err := c.do(ctx, http.MethodPost, "/token/", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a customer account (POST /auth/register/).
func (c *Client) Register(ctx context.Context, in models.RegisterInput) (*models.RegisterResponse, error) {
	var out models.RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterTailor creates a tailor account pending email verification.
func (c *Client) RegisterTailor(ctx context.Context, in models.PartnerRegistration) (*models.RegistrationResponse, error) {
	var out models.RegistrationResponse
	if err := c.do(ctx, http.MethodPost, "/auth/tailor/register/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterDelivery creates a delivery-partner account pending email verification.
func (c *Client) RegisterDelivery(ctx context.Context, in models.PartnerRegistration) (*models.RegistrationResponse, error) {
	var out models.RegistrationResponse
	if err := c.do(ctx, http.MethodPost, "/auth/delivery/register/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyEmail submits the emailed verification code.
func (c *Client) VerifyEmail(ctx context.Context, in models.VerifyEmailInput) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify-email/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendVerification asks the API to email a fresh code.
func (c *Client) ResendVerification(ctx context.Context, in models.ResendVerificationInput) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/resend-verification/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the identity behind the current token.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
