package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "R150.00", Money(decimal.RequireFromString("150")))
	assert.Equal(t, "R99.90", Money(decimal.RequireFromString("99.9")))
	assert.Equal(t, "R0.00", Money(decimal.Zero))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "-", Date(nil))
	assert.Equal(t, "-", Date(&time.Time{}))

	d := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "14 Mar 2026", Date(&d))
}

func TestTemplatesDefineEveryPage(t *testing.T) {
	tpl, err := Templates()
	require.NoError(t, err)

	pages := []string{
		"header", "footer", "home", "schools", "order_now", "products",
		"measurement_profile", "measurement_fields", "cart", "checkout",
		"order_tracking", "confirm_order", "payment_result", "login", "register",
		"partner_register", "verify_email", "tailor_dashboard", "delivery_dashboard",
		"admin", "terms", "error",
	}
	for _, page := range pages {
		assert.NotNil(t, tpl.Lookup(page), page)
	}
}

func TestErrorPageRendersMessage(t *testing.T) {
	tpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tpl.ExecuteTemplate(&buf, "error", map[string]any{
		"Title": "Page not found",
		"Error": "The page you are looking for does not exist.",
		"Path":  "/missing",
	}))
	assert.Contains(t, buf.String(), "Page not found")
	assert.Contains(t, buf.String(), "does not exist")
}
