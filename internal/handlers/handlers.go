package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/schooluniforms-web/internal/api"
	"github.com/01moynul/schooluniforms-web/internal/visitor"
)

// VisitorKey is where the visitor middleware stores the current visitor in
// the gin context.
const VisitorKey = "visitor"

// Handlers holds the dependencies of every view.
type Handlers struct {
	Visitors *visitor.Registry
}

func currentVisitor(c *gin.Context) *visitor.Visitor {
	return c.MustGet(VisitorKey).(*visitor.Visitor)
}

// render adds the header data (identity, cart badge) and renders a page.
func (h *Handlers) render(c *gin.Context, status int, page string, data gin.H) {
	v := currentVisitor(c)
	if data == nil {
		data = gin.H{}
	}
	data["Identity"] = v.Session.Current()
	data["CartCount"] = v.Cart.Count()
	data["Path"] = c.Request.URL.Path
	c.HTML(status, page, data)
}

// unauthorized sends the visitor home when err is a 401. The gateway has
// already cleared the token and the session by the time this runs.
func unauthorized(c *gin.Context, err error) bool {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false
	}
	c.Redirect(http.StatusSeeOther, "/")
	return true
}

// failPage renders page with the API's message (or fallback) as the inline
// error, or redirects home on a 401.
func (h *Handlers) failPage(c *gin.Context, status int, page string, data gin.H, err error, fallback string) {
	if unauthorized(c, err) {
		return
	}
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	if data == nil {
		data = gin.H{}
	}
	data["Error"] = api.Message(err, fallback)
	h.render(c, status, page, data)
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// NotFound renders the shared error page.
func (h *Handlers) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "error", gin.H{
		"Title": "Page not found",
		"Error": "The page you are looking for does not exist.",
	})
}

// Terms renders the static terms page.
func (h *Handlers) Terms(c *gin.Context) {
	h.render(c, http.StatusOK, "terms", gin.H{"Title": "Terms & Conditions"})
}

// apiMessage logs err and returns the API's message for it, or fallback.
func apiMessage(err error, fallback string) string {
	log.Printf("api: %v", err)
	return api.Message(err, fallback)
}
