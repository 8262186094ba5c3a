package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type quantityForm struct {
	Quantity int `form:"quantity" binding:"required,min=1,max=99"`
}

// Cart shows the last server copy of the cart, refetched on every visit.
func (h *Handlers) Cart(c *gin.Context) {
	v := currentVisitor(c)
	data := gin.H{"Title": "Your Cart"}
	if c.Query("added") != "" {
		data["Notice"] = "Item added to cart."
	}

	snapshot, err := v.Cart.Refresh(c.Request.Context())
	data["Cart"] = snapshot
	if err != nil {
		h.failPage(c, http.StatusOK, "cart", data, err, "Could not load your cart.")
		return
	}
	h.render(c, http.StatusOK, "cart", data)
}

// UpdateCartItem changes a quantity; the cart is refetched afterwards.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	v := currentVisitor(c)
	id, ok := paramID(c, "id")
	if !ok {
		h.NotFound(c)
		return
	}

	var input quantityForm
	if err := c.ShouldBind(&input); err != nil {
		h.render(c, http.StatusBadRequest, "cart", gin.H{
			"Title": "Your Cart",
			"Cart":  v.Cart.Snapshot(),
			"Error": "Quantity must be between 1 and 99.",
		})
		return
	}

	snapshot, err := v.Cart.Update(c.Request.Context(), id, input.Quantity)
	if err != nil {
		h.failPage(c, http.StatusOK, "cart", gin.H{"Title": "Your Cart", "Cart": snapshot}, err, "Could not update the item.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// RemoveCartItem deletes an item; the cart is refetched afterwards.
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	v := currentVisitor(c)
	id, ok := paramID(c, "id")
	if !ok {
		h.NotFound(c)
		return
	}

	snapshot, err := v.Cart.Remove(c.Request.Context(), id)
	if err != nil {
		h.failPage(c, http.StatusOK, "cart", gin.H{"Title": "Your Cart", "Cart": snapshot}, err, "Could not remove the item.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}
