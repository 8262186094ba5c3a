package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/schooluniforms-web/internal/lookup"
)

// Schools lists every school, filtered by ?q= on name, town or province.
// When the filter finds nothing, the closest school name is suggested.
func (h *Handlers) Schools(c *gin.Context) {
	v := currentVisitor(c)
	query := strings.TrimSpace(c.Query("q"))
	data := gin.H{"Title": "Schools", "Query": query}

	// 1. --- Fetch ---
	schools, err := v.API.ListSchools(c.Request.Context())
	if err != nil {
		h.failPage(c, http.StatusOK, "schools", data, err, "Could not load schools.")
		return
	}

	// 2. --- Filter, then suggest ---
	filtered := lookup.Filter(schools, query)
	data["Schools"] = filtered
	if query != "" && len(filtered) == 0 {
		data["Suggestion"] = lookup.Suggest(schools, query)
	}

	h.render(c, http.StatusOK, "schools", data)
}

// OrderNow is the "find your school" entry point. With ?school=<name> it
// jumps straight to the best matching school's products.
func (h *Handlers) OrderNow(c *gin.Context) {
	v := currentVisitor(c)
	name := strings.TrimSpace(c.Query("school"))
	data := gin.H{"Title": "Order Now", "Query": name}

	schools, err := v.API.ListSchools(c.Request.Context())
	if err != nil {
		h.failPage(c, http.StatusOK, "order_now", data, err, "Could not load schools.")
		return
	}

	if name != "" {
		if match := lookup.Suggest(schools, name); match != nil {
			c.Redirect(http.StatusSeeOther, fmt.Sprintf("/schools/%d/products", match.ID))
			return
		}
		data["Error"] = "No schools found. Please try a different search term."
	}

	data["Schools"] = lookup.Filter(schools, name)
	h.render(c, http.StatusOK, "order_now", data)
}

// Products shows the uniform items of one school.
func (h *Handlers) Products(c *gin.Context) {
	v := currentVisitor(c)
	ctx := c.Request.Context()
	id, ok := paramID(c, "schoolId")
	if !ok {
		h.NotFound(c)
		return
	}
	data := gin.H{"Title": "Products", "SchoolID": id}

	school, err := v.API.GetSchool(ctx, id)
	if err != nil {
		h.failPage(c, http.StatusOK, "products", data, err, "Could not load this school.")
		return
	}
	data["School"] = school
	data["Title"] = school.Name

	products, err := v.API.ListProducts(ctx, strconv.FormatInt(id, 10))
	if err != nil {
		h.failPage(c, http.StatusOK, "products", data, err, "Could not load products.")
		return
	}
	data["Products"] = products
	h.render(c, http.StatusOK, "products", data)
}
