package models

import (
	"github.com/shopspring/decimal"
)

// Cart is the point-in-time copy of the server-resident cart.
type Cart struct {
	ID    int64           `json:"id,omitempty"`
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// ItemCount is the number of garments in the cart (sum of quantities).
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Empty reports whether there is nothing to check out.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

// StudentProfile is the student a garment is made for. It is flattened into
// cart items and cart-add payloads.
type StudentProfile struct {
	StudentName   string          `json:"student_name"`
	StudentAge    int             `json:"student_age,omitempty"`
	StudentGrade  string          `json:"student_grade"`
	StudentGender string          `json:"student_gender"`
	StudentHeight decimal.Decimal `json:"student_height"`
}

// CartItem is one garment bound to one student's measurements.
type CartItem struct {
	ID                 int64        `json:"id"`
	Product            Ref[Product] `json:"product"`
	ProductName        string       `json:"product_name"`
	GarmentTypeDisplay string       `json:"garment_type_display"`
	Quantity           int          `json:"quantity"`
	StudentProfile
	Measurements map[string]any  `json:"measurements"`
	Price        decimal.Decimal `json:"price"`
	Total        decimal.Decimal `json:"total"`
}

// SchoolID returns the school of the item's product when the API nested it.
func (i CartItem) SchoolID() int64 {
	if i.Product.Value == nil {
		return 0
	}
	return i.Product.Value.School.ID
}

// AddCartItemInput is the body of POST /cart/add/.
type AddCartItemInput struct {
	Product  int64 `json:"product"`
	Quantity int   `json:"quantity"`
	StudentProfile
	Measurements map[string]any `json:"measurements"`
}

// UpdateCartItemInput is the body of PATCH /cart/update/{id}/.
type UpdateCartItemInput struct {
	Quantity int `json:"quantity"`
}
