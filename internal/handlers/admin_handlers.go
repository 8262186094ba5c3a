package handlers

import (
	"log"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

// AdminTabs are the sections of the admin dashboard, in display order.
var AdminTabs = []string{"dashboard", "schools", "products", "users"}

// Admin renders the staff dashboard (?tab=).
func (h *Handlers) Admin(c *gin.Context) {
	v := currentVisitor(c)
	identity := v.Session.Current()
	if identity == nil || !(identity.User.IsStaff || identity.Role == models.RoleAdmin) {
		h.render(c, http.StatusForbidden, "error", gin.H{
			"Title": "Admin",
			"Error": "Access denied. Admin privileges required.",
		})
		return
	}

	tab := c.DefaultQuery("tab", "dashboard")
	if !slices.Contains(AdminTabs, tab) {
		tab = "dashboard"
	}
	var (
		schools     []models.School
		products    []models.Product
		productsErr error
	)
	data := gin.H{
		"Title":         "Admin Dashboard",
		"Tab":           tab,
		"Tabs":          AdminTabs,
		"Schools":       schools,
		"Products":      products,
		"ActiveSchools": 0,
	}

	// 1. --- Fetch schools and products together ---
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		schools, err = v.API.ListSchools(ctx)
		return err
	})
	g.Go(func() error {
		// The product list has no school filter; the backend may answer with
		// an empty list or an error. Neither stops the dashboard.
		products, productsErr = v.API.ListProducts(ctx, "")
		return nil
	})
	if err := g.Wait(); err != nil {
		h.failPage(c, http.StatusOK, "admin", data, err, "Failed to load dashboard data")
		return
	}

	// 2. --- Render ---
	if productsErr != nil {
		if unauthorized(c, productsErr) {
			return
		}
		log.Printf("admin: products: %v", productsErr)
		data["ProductsError"] = "Products could not be loaded for all schools."
	}
	data["Schools"] = schools
	data["Products"] = products
	data["ActiveSchools"] = countActive(schools)
	h.render(c, http.StatusOK, "admin", data)
}

func countActive(schools []models.School) int {
	n := 0
	for _, s := range schools {
		if s.IsActive {
			n++
		}
	}
	return n
}
