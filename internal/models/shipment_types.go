package models

// Shipment statuses.
const (
	ShipmentPending   = "pending"
	ShipmentAssigned  = "assigned"
	ShipmentPickedUp  = "picked_up"
	ShipmentInTransit = "in_transit"
	ShipmentDelivered = "delivered"
)

// DeliveryStatuses are the values a delivery partner may pick on the dashboard.
var DeliveryStatuses = []string{ShipmentAssigned, ShipmentPickedUp, ShipmentInTransit, ShipmentDelivered}

// Shipment is the delivery partner's unit of work for one order.
type Shipment struct {
	ID           int64      `json:"id"`
	TrackingCode string     `json:"tracking_code"`
	Status       string     `json:"status"`
	Order        Ref[Order] `json:"order"`
}
