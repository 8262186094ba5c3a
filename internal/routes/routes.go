package routes

import (
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/schooluniforms-web/internal/handlers"
	"github.com/01moynul/schooluniforms-web/internal/models"
	"github.com/01moynul/schooluniforms-web/internal/visitor"
)

// VisitorCookie carries the id of the browser's visitor.
const VisitorCookie = "su_visitor"

const visitorCookieMaxAge = 30 * 24 * 60 * 60

// VisitorMiddleware attaches the browser's visitor (its own gateway client,
// session, cart and carousel) to the request, creating one on first contact.
func VisitorMiddleware(visitors *visitor.Registry, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Resolve the visitor from the cookie ---
		id, _ := c.Cookie(VisitorCookie)
		v, err := visitors.Get(c.Request.Context(), id)
		if err != nil {
			log.Printf("visitor middleware: %v", err)
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}

		// 2. --- Refresh the cookie (new id, or sliding expiry) ---
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(VisitorCookie, v.ID, visitorCookieMaxAge, "/", "", secureCookie, true)

		// 3. --- Hand it to the handlers ---
		c.Set(handlers.VisitorKey, v)
		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, templates *template.Template, secureCookie bool) *gin.Engine {
	router := gin.Default()
	router.SetHTMLTemplate(templates)

	// --- Ping Route (no visitor) ---
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong!"})
	})

	site := router.Group("/")
	site.Use(VisitorMiddleware(h.Visitors, secureCookie))
	{
		// --- Home & featured carousel ---
		site.GET("/", h.Home)
		site.POST("/featured/next", h.FeaturedNext)
		site.POST("/featured/prev", h.FeaturedPrev)
		site.POST("/featured/slide/:index", h.FeaturedSlide)
		site.POST("/featured/shuffle", h.FeaturedShuffle)
		site.GET("/featured/stream", h.FeaturedStream)

		// --- Catalog ---
		site.GET("/schools", h.Schools)
		site.GET("/schools/:schoolId/products", h.Products)
		site.GET("/order-now", h.OrderNow)

		// --- Measurements ---
		site.GET("/measurement/:productId", h.MeasurementForm)
		site.POST("/measurement/:productId/profile", h.SaveProfile)
		site.POST("/measurement/:productId", h.SubmitMeasurements)

		// --- Cart & checkout ---
		site.GET("/cart", h.Cart)
		site.POST("/cart/items/:id", h.UpdateCartItem)
		site.POST("/cart/items/:id/remove", h.RemoveCartItem)
		site.GET("/checkout", h.CheckoutForm)
		site.POST("/checkout", h.Checkout)
		site.GET("/payment/success", h.PaymentSuccess)
		site.GET("/payment/cancel", h.PaymentCancel)
		site.GET("/payment/status", h.PaymentStatus)

		// --- Orders ---
		site.GET("/order-tracking", h.OrderTracking)
		site.GET("/tailor/confirm-order/:token", h.ConfirmTailorOrder)

		// --- Auth ---
		site.GET("/login", h.LoginPage(""))
		site.POST("/login", h.Login(""))
		site.GET("/tailor-login", h.LoginPage(models.RoleTailor))
		site.POST("/tailor-login", h.Login(models.RoleTailor))
		site.GET("/delivery-login", h.LoginPage(models.RoleDelivery))
		site.POST("/delivery-login", h.Login(models.RoleDelivery))
		site.POST("/logout", h.Logout)

		site.GET("/register", h.RegisterPage)
		site.POST("/register", h.Register)
		site.GET("/tailor-register", h.PartnerRegisterPage(models.RoleTailor))
		site.POST("/tailor-register", h.PartnerRegister(models.RoleTailor))
		site.GET("/delivery-register", h.PartnerRegisterPage(models.RoleDelivery))
		site.POST("/delivery-register", h.PartnerRegister(models.RoleDelivery))
		site.GET("/verify-email", h.VerifyEmailPage)
		site.POST("/verify-email", h.VerifyEmail)
		site.POST("/resend-verification", h.ResendVerification)

		// --- Dashboards ---
		site.GET("/tailor/dashboard", h.TailorDashboard)
		site.POST("/tailor/orders/:id/status", h.UpdateTailorOrderStatus)
		site.GET("/delivery/dashboard", h.DeliveryDashboard)
		site.POST("/delivery/shipments/:id/status", h.UpdateShipmentStatus)
		site.GET("/admin", h.Admin)

		// --- Static ---
		site.GET("/terms", h.Terms)
	}

	router.NoRoute(VisitorMiddleware(h.Visitors, secureCookie), h.NotFound)
	return router
}
