package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

// checkoutForm is the guest contact form.
type checkoutForm struct {
	CustomerName  string `form:"customer_name" binding:"required"`
	CustomerPhone string `form:"customer_phone" binding:"required"`
	CustomerEmail string `form:"customer_email" binding:"required,email"`
}

var errNoApprovalURL = errors.New("payment provider returned no approval URL")

// CheckoutForm shows the order summary and the contact form.
func (h *Handlers) CheckoutForm(c *gin.Context) {
	v := currentVisitor(c)
	data := gin.H{"Title": "Checkout"}

	snapshot, err := v.Cart.Refresh(c.Request.Context())
	data["Cart"] = snapshot
	if err != nil {
		h.failPage(c, http.StatusOK, "checkout", data, err, "Failed to load cart")
		return
	}
	h.render(c, http.StatusOK, "checkout", data)
}

// Checkout creates the guest order, initiates payment and sends the browser
// to the payment provider. Submitting twice creates two orders.
func (h *Handlers) Checkout(c *gin.Context) {
	v := currentVisitor(c)
	ctx := c.Request.Context()
	snapshot := v.Cart.Snapshot()
	data := gin.H{"Title": "Checkout", "Cart": snapshot}

	// 1. --- Validate ---
	var input checkoutForm
	if err := c.ShouldBind(&input); err != nil {
		data["Form"] = input
		data["Error"] = "Please enter your name, phone number and a valid email address."
		h.render(c, http.StatusBadRequest, "checkout", data)
		return
	}
	data["Form"] = input
	if snapshot.Empty() {
		data["Error"] = "Your cart is empty"
		h.render(c, http.StatusBadRequest, "checkout", data)
		return
	}

	// 2. --- Create the order with the server's own total ---
	checkout := models.CheckoutInput{
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		CustomerEmail: input.CustomerEmail,
		School:        snapshot.Items[0].SchoolID(),
		TotalAmount:   snapshot.Total,
	}
	order, err := v.API.GuestCheckout(ctx, checkout)
	if err != nil {
		h.failPage(c, http.StatusOK, "checkout", data, err, "Checkout failed")
		return
	}
	log.Printf("checkout: order %s created for visitor %s", order.OrderCode, v.ID)

	// 3. --- Initiate payment ---
	payment, err := v.API.InitiatePayment(ctx, models.PaymentInitiateInput{
		OrderID:   order.OrderID,
		OrderCode: order.OrderCode,
	})
	if err != nil {
		data["OrderCode"] = order.OrderCode
		h.failPage(c, http.StatusOK, "checkout", data, err, "Checkout failed")
		return
	}

	// 4. --- Hand off to the payment provider ---
	approval := payment.ApprovalURL
	if approval == "" {
		approval = order.ApprovalURL
	}
	if approval == "" {
		data["OrderCode"] = order.OrderCode
		h.failPage(c, http.StatusOK, "checkout", data, errNoApprovalURL, "Payment could not be started. Please try again.")
		return
	}

	v.Cart.Clear()
	c.Redirect(http.StatusSeeOther, approval)
}

// PaymentSuccess is where the payment provider returns after approval. It
// completes the payment and shows the outcome.
func (h *Handlers) PaymentSuccess(c *gin.Context) {
	v := currentVisitor(c)
	data := gin.H{"Title": "Payment"}

	paymentID := c.Query("paymentId")
	payerID := c.Query("PayerID")
	if paymentID == "" || payerID == "" {
		data["Error"] = "Missing payment details."
		h.render(c, http.StatusBadRequest, "payment_result", data)
		return
	}
	orderID, _ := strconv.ParseInt(c.Query("order_id"), 10, 64)

	result, err := v.API.ExecutePayment(c.Request.Context(), models.PaymentExecuteInput{
		PaymentID: paymentID,
		PayerID:   payerID,
		OrderID:   orderID,
	})
	if err != nil {
		h.failPage(c, http.StatusOK, "payment_result", data, err, "Payment could not be completed.")
		return
	}

	if _, err := v.Cart.Refresh(c.Request.Context()); err != nil {
		log.Printf("payment: cart refresh after payment: %v", err)
	}
	data["Result"] = result
	h.render(c, http.StatusOK, "payment_result", data)
}

// PaymentCancel is where the payment provider returns when the customer
// backs out.
func (h *Handlers) PaymentCancel(c *gin.Context) {
	h.render(c, http.StatusOK, "payment_result", gin.H{
		"Title":     "Payment cancelled",
		"Cancelled": true,
	})
}

// PaymentStatus shows the state of one payment (?payment_id=).
func (h *Handlers) PaymentStatus(c *gin.Context) {
	v := currentVisitor(c)
	data := gin.H{"Title": "Payment"}
	paymentID := c.Query("payment_id")
	if paymentID == "" {
		data["Error"] = "Missing payment id."
		h.render(c, http.StatusBadRequest, "payment_result", data)
		return
	}

	result, err := v.API.PaymentStatus(c.Request.Context(), paymentID)
	if err != nil {
		h.failPage(c, http.StatusOK, "payment_result", data, err, "Could not check this payment.")
		return
	}
	data["Result"] = result
	h.render(c, http.StatusOK, "payment_result", data)
}
