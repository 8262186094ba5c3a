package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

//
// --- Tailor and delivery-partner endpoints ---
//

// TailorOrders lists the orders of the schools the signed-in tailor serves.
func (c *Client) TailorOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := c.do(ctx, http.MethodGet, "/tailor/orders/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTailorOrderStatus moves one order to status.
func (c *Client) UpdateTailorOrderStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	var out models.Order
	path := fmt.Sprintf("/tailor/orders/%d/status/", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, models.StatusUpdate{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Shipments lists the shipments assigned to the signed-in delivery partner.
func (c *Client) Shipments(ctx context.Context) ([]models.Shipment, error) {
	var out []models.Shipment
	if err := c.do(ctx, http.MethodGet, "/delivery/shipments/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateShipmentStatus moves one shipment to status.
func (c *Client) UpdateShipmentStatus(ctx context.Context, id int64, status string) (*models.Shipment, error) {
	var out models.Shipment
	path := fmt.Sprintf("/delivery/shipments/%d/status/", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, models.StatusUpdate{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
