package models

import "github.com/shopspring/decimal"

// PaymentInitiateInput is the body of POST /payments/initiate/.
type PaymentInitiateInput struct {
	OrderID   int64  `json:"order_id"`
	OrderCode string `json:"order_code"`
}

// PaymentInitiation carries the externally hosted approval URL.
type PaymentInitiation struct {
	PaymentID   string          `json:"payment_id,omitempty"`
	ApprovalURL string          `json:"approval_url,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status,omitempty"`
}

// PaymentExecuteInput is the body of POST /payments/execute/, built from the
// query string the payment provider redirects back with.
type PaymentExecuteInput struct {
	PaymentID string `json:"paymentID"`
	PayerID   string `json:"payerID"`
	OrderID   int64  `json:"orderID,omitempty"`
}

// PaymentResult is returned by execute and status lookups.
type PaymentResult struct {
	PaymentID string          `json:"payment_id,omitempty"`
	Status    string          `json:"status"`
	OrderCode string          `json:"order_code,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Message   string          `json:"message,omitempty"`
}
