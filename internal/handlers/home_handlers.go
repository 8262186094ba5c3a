package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

// Home renders the landing page with the current featured slide.
func (h *Handlers) Home(c *gin.Context) {
	v := currentVisitor(c)

	data := gin.H{"Title": "School Uniforms"}
	if err := v.EnsureFeatured(c.Request.Context()); err != nil {
		h.failPage(c, http.StatusOK, "home", data, err, "Could not load featured products.")
		return
	}

	data["Slide"] = v.Carousel.Slide()
	data["Index"] = v.Carousel.Index()
	data["Slides"] = make([]struct{}, v.Carousel.Len())
	h.render(c, http.StatusOK, "home", data)
}

// FeaturedNext moves the carousel forward and restarts its timer.
func (h *Handlers) FeaturedNext(c *gin.Context) {
	currentVisitor(c).Carousel.Next()
	c.Redirect(http.StatusSeeOther, "/")
}

// FeaturedPrev moves the carousel back and restarts its timer.
func (h *Handlers) FeaturedPrev(c *gin.Context) {
	currentVisitor(c).Carousel.Prev()
	c.Redirect(http.StatusSeeOther, "/")
}

// FeaturedSlide jumps to one slide (the dot navigation).
func (h *Handlers) FeaturedSlide(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	currentVisitor(c).Carousel.GoTo(index)
	c.Redirect(http.StatusSeeOther, "/")
}

// FeaturedShuffle draws a fresh set of featured products.
func (h *Handlers) FeaturedShuffle(c *gin.Context) {
	currentVisitor(c).ReloadFeatured()
	c.Redirect(http.StatusSeeOther, "/")
}

// FeaturedStream pushes every slide change to the open home page. Autoplay
// runs while any of the visitor's streams is connected.
func (h *Handlers) FeaturedStream(c *gin.Context) {
	v := currentVisitor(c)
	ctx := c.Request.Context()

	updates, unsubscribe := v.Carousel.Subscribe()
	defer unsubscribe()
	v.Carousel.Start(ctx)

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-v.Context().Done():
			return false
		case index := <-updates:
			c.SSEvent("slide", slideEvent{Index: index, Products: v.Carousel.Slide()})
			return true
		}
	})
}

type slideEvent struct {
	Index    int              `json:"index"`
	Products []models.Product `json:"products"`
}
