package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken is returned when there is nothing to inspect.
var ErrNoToken = errors.New("no access token")

// TokenInfo is what the client can learn from an access token on its own.
// The signature is NOT verified: the signing key lives with the API, and the
// API re-checks every token it receives anyway.
type TokenInfo struct {
	UserID    int64
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim is in the past. A token
// without exp never expires from the client's point of view.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

// InspectToken reads the user id and expiry out of an access token.
func InspectToken(tokenString string) (*TokenInfo, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	// 1. Parse without a key. We only want the payload.
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("malformed access token: %w", err)
	}

	info := &TokenInfo{}

	// 2. The API issues "user_id"; "sub" is the standard fallback.
	id, err := userIDClaim(claims)
	if err != nil {
		return nil, err
	}
	info.UserID = id

	// 3. Expiry is optional.
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp != nil {
		info.ExpiresAt = exp.Time
	}

	return info, nil
}

func userIDClaim(claims jwt.MapClaims) (int64, error) {
	for _, key := range []string{"user_id", "sub"} {
		raw, ok := claims[key]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case float64:
			// JSON numbers decode to float64
			return int64(v), nil
		case string:
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid %s claim: %w", key, err)
			}
			return id, nil
		default:
			return 0, fmt.Errorf("invalid %s claim", key)
		}
	}
	return 0, errors.New("token carries no user id")
}
