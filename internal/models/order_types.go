package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses as driven by the server.
const (
	OrderPending      = "pending"
	OrderConfirmed    = "confirmed"
	OrderInProduction = "in_production"
	OrderCompleted    = "completed"
	OrderShipped      = "shipped"
	OrderDelivered    = "delivered"
	OrderCancelled    = "cancelled"
)

// TailorStatuses are the values a tailor may pick on the dashboard.
var TailorStatuses = []string{OrderConfirmed, OrderInProduction, OrderCompleted}

// Order is a guest order as returned by GET /orders/{code}/ and the tailor list.
type Order struct {
	ID            int64           `json:"id"`
	Code          string          `json:"order_code"`
	School        Ref[School]     `json:"school"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail string          `json:"customer_email"`
	StudentName   string          `json:"student_name"`
	Lines         []OrderLine     `json:"lines"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	Tailor        Ref[User]       `json:"tailor"`
	Deadline      *time.Time      `json:"deadline"`
	CreatedAt     *time.Time      `json:"created_at"`
}

func (o *Order) RefID() int64 { return o.ID }

// OrderLine is one garment of an order.
type OrderLine struct {
	ID                 int64           `json:"id"`
	ProductName        string          `json:"product_name"`
	GarmentTypeDisplay string          `json:"garment_type_display"`
	StudentName        string          `json:"student_name"`
	Quantity           int             `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
	Measurements       map[string]any  `json:"measurements"`
}

// CheckoutInput is the body of POST /checkout/guest/.
type CheckoutInput struct {
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail string          `json:"customer_email"`
	School        int64           `json:"school,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// CheckoutResponse is what guest checkout returns.
type CheckoutResponse struct {
	OrderID     int64           `json:"order_id"`
	OrderCode   string          `json:"order_code"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaymentID   string          `json:"payment_id,omitempty"`
	ApprovalURL string          `json:"approval_url,omitempty"`
	Message     string          `json:"message,omitempty"`
}

// StatusUpdate is the body of every dashboard status PATCH.
type StatusUpdate struct {
	Status string `json:"status"`
}

// MessageResponse covers the endpoints that only answer with a message.
type MessageResponse struct {
	Message  string     `json:"message"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

// StatusLabel renders a status code the way the badges show it
// ("in_production" -> "IN PRODUCTION").
func StatusLabel(status string) string {
	return strings.ToUpper(strings.ReplaceAll(status, "_", " "))
}
