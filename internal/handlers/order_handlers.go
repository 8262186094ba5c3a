package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/schooluniforms-web/internal/api"
)

// OrderTracking looks an order up by code (?code=).
func (h *Handlers) OrderTracking(c *gin.Context) {
	v := currentVisitor(c)
	code := strings.ToUpper(strings.TrimSpace(c.Query("code")))
	data := gin.H{"Title": "Track Your Order", "Code": code}
	if code == "" {
		h.render(c, http.StatusOK, "order_tracking", data)
		return
	}

	order, err := v.API.GetOrder(c.Request.Context(), code)
	if errors.Is(err, api.ErrNotFound) {
		data["Error"] = "Order not found"
		h.render(c, http.StatusNotFound, "order_tracking", data)
		return
	}
	if err != nil {
		h.failPage(c, http.StatusOK, "order_tracking", data, err, "Could not look up this order.")
		return
	}

	data["Order"] = order
	h.render(c, http.StatusOK, "order_tracking", data)
}

// ConfirmTailorOrder is the landing page of the link emailed to a tailor
// when an order is assigned.
func (h *Handlers) ConfirmTailorOrder(c *gin.Context) {
	v := currentVisitor(c)
	data := gin.H{"Title": "Confirm Order"}

	resp, err := v.API.ConfirmTailorOrder(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.failPage(c, http.StatusOK, "confirm_order", data, err, "This confirmation link is invalid or has expired.")
		return
	}
	data["Message"] = resp.Message
	data["Deadline"] = resp.Deadline
	h.render(c, http.StatusOK, "confirm_order", data)
}
