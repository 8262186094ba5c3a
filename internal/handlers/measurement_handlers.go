package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/01moynul/schooluniforms-web/internal/measurement"
	"github.com/01moynul/schooluniforms-web/internal/models"
	"github.com/01moynul/schooluniforms-web/internal/visitor"
)

// profileForm is step one of the measurement flow.
type profileForm struct {
	StudentName   string `form:"student_name" binding:"required"`
	StudentAge    int    `form:"student_age" binding:"omitempty,min=1,max=30"`
	StudentGrade  string `form:"student_grade" binding:"required"`
	StudentGender string `form:"student_gender" binding:"required,oneof=male female"`
	StudentHeight string `form:"student_height" binding:"required,numeric"`
}

func (f profileForm) profile() (models.StudentProfile, error) {
	height, err := decimal.NewFromString(f.StudentHeight)
	if err != nil {
		return models.StudentProfile{}, err
	}
	return models.StudentProfile{
		StudentName:   f.StudentName,
		StudentAge:    f.StudentAge,
		StudentGrade:  f.StudentGrade,
		StudentGender: f.StudentGender,
		StudentHeight: height,
	}, nil
}

// findProduct looks the product up in its school's list when the school is
// known (?school=). Without it only the id is known.
func (h *Handlers) findProduct(c *gin.Context, v *visitor.Visitor, productID int64) models.Product {
	product := models.Product{ID: productID}
	school := c.Query("school")
	if school == "" {
		return product
	}
	products, err := v.API.ListProducts(c.Request.Context(), school)
	if err != nil {
		log.Printf("measurement: products of school %s: %v", school, err)
		return product
	}
	for _, p := range products {
		if p.ID == productID {
			return p
		}
	}
	return product
}

func measurementPath(productID int64, school string) string {
	path := fmt.Sprintf("/measurement/%d", productID)
	if school != "" {
		path += "?school=" + url.QueryEscape(school)
	}
	return path
}

// MeasurementForm shows step one (student profile) or, once a profile is
// saved for this product, step two (garment measurements).
func (h *Handlers) MeasurementForm(c *gin.Context) {
	v := currentVisitor(c)
	id, ok := paramID(c, "productId")
	if !ok {
		h.NotFound(c)
		return
	}
	product := h.findProduct(c, v, id)
	data := gin.H{
		"Title":   "Measurements",
		"Product": product,
		"School":  c.Query("school"),
	}

	draft, hasDraft := v.Draft(id)
	if !hasDraft || c.Query("step") == "profile" {
		if hasDraft {
			data["Profile"] = draft.Profile
		}
		h.render(c, http.StatusOK, "measurement_profile", data)
		return
	}

	form, err := measurement.Resolve(c.Request.Context(), v.API, product)
	if err != nil {
		h.failPage(c, http.StatusOK, "measurement_fields", data, err, "Could not load the measurement form.")
		return
	}
	data["Form"] = form
	data["Profile"] = draft.Profile
	data["Values"] = map[string]string{}
	h.render(c, http.StatusOK, "measurement_fields", data)
}

// SaveProfile stores step one and moves on to step two.
func (h *Handlers) SaveProfile(c *gin.Context) {
	v := currentVisitor(c)
	id, ok := paramID(c, "productId")
	if !ok {
		h.NotFound(c)
		return
	}
	school := c.Query("school")

	// 1. --- Bind and validate ---
	var input profileForm
	if err := c.ShouldBind(&input); err != nil {
		h.render(c, http.StatusBadRequest, "measurement_profile", gin.H{
			"Title":   "Measurements",
			"Product": models.Product{ID: id},
			"School":  school,
			"Error":   "Please complete every student detail (height in cm).",
		})
		return
	}
	profile, err := input.profile()
	if err != nil {
		h.render(c, http.StatusBadRequest, "measurement_profile", gin.H{
			"Title":   "Measurements",
			"Product": models.Product{ID: id},
			"School":  school,
			"Error":   "Height must be a number.",
		})
		return
	}

	// 2. --- Keep it for step two ---
	v.SetDraft(visitor.Draft{ProductID: id, Profile: profile})
	c.Redirect(http.StatusSeeOther, measurementPath(id, school))
}

// SubmitMeasurements validates step two and adds the garment to the cart.
func (h *Handlers) SubmitMeasurements(c *gin.Context) {
	v := currentVisitor(c)
	ctx := c.Request.Context()
	id, ok := paramID(c, "productId")
	if !ok {
		h.NotFound(c)
		return
	}
	school := c.Query("school")

	// 1. --- Step one must be done ---
	draft, ok := v.Draft(id)
	if !ok {
		c.Redirect(http.StatusSeeOther, measurementPath(id, school))
		return
	}

	// 2. --- Validate against the same field list the form showed ---
	product := h.findProduct(c, v, id)
	form, err := measurement.Resolve(ctx, v.API, product)
	if err != nil {
		h.failPage(c, http.StatusOK, "measurement_fields", gin.H{"Product": product, "School": school}, err, "Could not load the measurement form.")
		return
	}
	values := c.PostFormMap("m")
	data := gin.H{
		"Title":   "Measurements",
		"Product": product,
		"School":  school,
		"Form":    form,
		"Profile": draft.Profile,
		"Values":  values,
	}
	if problems := measurement.Validate(form.Fields, values); problems != nil {
		data["Problems"] = problems
		data["Error"] = "Please fill in every required measurement."
		h.render(c, http.StatusBadRequest, "measurement_fields", data)
		return
	}

	// 3. --- One cart-add call, then the cart refetches ---
	_, err = v.Cart.Add(ctx, models.AddCartItemInput{
		Product:        id,
		Quantity:       1,
		StudentProfile: draft.Profile,
		Measurements:   measurement.Coerce(values),
	})
	if err != nil {
		h.failPage(c, http.StatusOK, "measurement_fields", data, err, "Could not add this item to the cart.")
		return
	}

	v.ClearDraft()
	c.Redirect(http.StatusSeeOther, "/cart?added="+strconv.FormatInt(id, 10))
}
