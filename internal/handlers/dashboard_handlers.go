package handlers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/schooluniforms-web/internal/models"
	"github.com/01moynul/schooluniforms-web/internal/visitor"
)

type statusForm struct {
	Status string `form:"status" binding:"required"`
}

// requireRole sends the visitor to loginPath unless they are signed in as role.
func requireRole(c *gin.Context, v *visitor.Visitor, role, loginPath string) bool {
	if v.Session.HasRole(role) {
		return true
	}
	c.Redirect(http.StatusSeeOther, loginPath)
	return false
}

// TailorDashboard lists the orders assigned to the signed-in tailor.
func (h *Handlers) TailorDashboard(c *gin.Context) {
	v := currentVisitor(c)
	if !requireRole(c, v, models.RoleTailor, tailorPortal.LoginPath) {
		return
	}
	h.renderTailorDashboard(c, v, http.StatusOK, "")
}

func (h *Handlers) renderTailorDashboard(c *gin.Context, v *visitor.Visitor, status int, problem string) {
	data := gin.H{
		"Title":    "Tailor Dashboard",
		"Statuses": models.TailorStatuses,
	}
	if problem != "" {
		data["Error"] = problem
	}

	orders, err := v.API.TailorOrders(c.Request.Context())
	if err != nil {
		h.failPage(c, http.StatusOK, "tailor_dashboard", data, err, "Failed to load orders")
		return
	}
	data["Orders"] = orders
	h.render(c, status, "tailor_dashboard", data)
}

// UpdateTailorOrderStatus moves one order along and reloads the list.
func (h *Handlers) UpdateTailorOrderStatus(c *gin.Context) {
	v := currentVisitor(c)
	if !requireRole(c, v, models.RoleTailor, tailorPortal.LoginPath) {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		h.NotFound(c)
		return
	}

	var input statusForm
	if err := c.ShouldBind(&input); err != nil || !slices.Contains(models.TailorStatuses, input.Status) {
		h.renderTailorDashboard(c, v, http.StatusBadRequest, "Please choose a valid status.")
		return
	}

	if _, err := v.API.UpdateTailorOrderStatus(c.Request.Context(), id, input.Status); err != nil {
		if unauthorized(c, err) {
			return
		}
		h.renderTailorDashboard(c, v, http.StatusOK, apiMessage(err, "Failed to update order status"))
		return
	}
	c.Redirect(http.StatusSeeOther, "/tailor/dashboard")
}

// DeliveryDashboard lists the shipments of the signed-in delivery partner.
func (h *Handlers) DeliveryDashboard(c *gin.Context) {
	v := currentVisitor(c)
	if !requireRole(c, v, models.RoleDelivery, deliveryPortal.LoginPath) {
		return
	}
	h.renderDeliveryDashboard(c, v, http.StatusOK, "")
}

func (h *Handlers) renderDeliveryDashboard(c *gin.Context, v *visitor.Visitor, status int, problem string) {
	data := gin.H{
		"Title":    "Delivery Dashboard",
		"Statuses": models.DeliveryStatuses,
	}
	if problem != "" {
		data["Error"] = problem
	}

	shipments, err := v.API.Shipments(c.Request.Context())
	if err != nil {
		h.failPage(c, http.StatusOK, "delivery_dashboard", data, err, "Failed to load shipments")
		return
	}
	data["Shipments"] = shipments
	h.render(c, status, "delivery_dashboard", data)
}

// UpdateShipmentStatus moves one shipment along and reloads the list.
func (h *Handlers) UpdateShipmentStatus(c *gin.Context) {
	v := currentVisitor(c)
	if !requireRole(c, v, models.RoleDelivery, deliveryPortal.LoginPath) {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		h.NotFound(c)
		return
	}

	var input statusForm
	if err := c.ShouldBind(&input); err != nil || !slices.Contains(models.DeliveryStatuses, input.Status) {
		h.renderDeliveryDashboard(c, v, http.StatusBadRequest, "Please choose a valid status.")
		return
	}

	if _, err := v.API.UpdateShipmentStatus(c.Request.Context(), id, input.Status); err != nil {
		if unauthorized(c, err) {
			return
		}
		h.renderDeliveryDashboard(c, v, http.StatusOK, apiMessage(err, "Failed to update shipment status"))
		return
	}
	c.Redirect(http.StatusSeeOther, "/delivery/dashboard")
}
