package measurement

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

// Garment is the coarse category that decides which fields are collected.
type Garment string

const (
	Tunic    Garment = "tunic"
	Trousers Garment = "trousers"
	Shirt    Garment = "shirt"
	Skirt    Garment = "skirt"
	Blazer   Garment = "blazer"
	Dress    Garment = "dress"
	General  Garment = "general"
)

type rule struct {
	garment  Garment
	keywords []string
}

// rules are checked in order; the first keyword found wins.
var rules = []rule{
	{Tunic, []string{"tunic"}},
	{Trousers, []string{"trouser", "pants"}},
	{Shirt, []string{"shirt", "blouse", "polo"}},
	{Skirt, []string{"skirt"}},
	{Blazer, []string{"blazer", "jacket"}},
	{Dress, []string{"dress", "pinafore"}},
}

func cm(name, label string) models.MeasurementField {
	return models.MeasurementField{Name: name, Label: label, Unit: "cm"}
}

func optionalCM(name, label string) models.MeasurementField {
	f := cm(name, label)
	f.Optional = true
	return f
}

var table = map[Garment]models.MeasurementTemplate{
	Tunic: {Name: "Tunic Measurements", Fields: []models.MeasurementField{
		cm("chest_circumference", "Chest Circumference"),
		cm("waist_circumference", "Waist Circumference"),
		cm("hip_circumference", "Hip Circumference"),
		cm("shoulder_width", "Shoulder Width"),
		cm("tunic_length", "Tunic Length"),
	}},
	Trousers: {Name: "Trousers/Pants Measurements", Fields: []models.MeasurementField{
		cm("waist_circumference", "Waist Circumference"),
		cm("hip_circumference", "Hip Circumference"),
		cm("front_rise", "Front Rise"),
		cm("back_rise", "Back Rise"),
		cm("inseam_length", "Inseam Length"),
		cm("outseam_length", "Outseam Length"),
		cm("thigh_circumference", "Thigh Circumference"),
		optionalCM("knee_circumference", "Knee Circumference"),
		cm("ankle_circumference", "Ankle Circumference"),
	}},
	Shirt: {Name: "Shirt/Blouse Measurements", Fields: []models.MeasurementField{
		cm("neck_circumference", "Neck Circumference"),
		cm("chest_bust_circumference", "Chest/Bust Circumference"),
		cm("waist_circumference", "Waist Circumference"),
		cm("shoulder_width", "Shoulder Width"),
		cm("sleeve_length", "Sleeve Length"),
		cm("shirt_length_back", "Shirt Length (Back)"),
	}},
	Skirt: {Name: "Skirt Measurements", Fields: []models.MeasurementField{
		cm("waist_circumference", "Waist Circumference"),
		cm("hip_circumference", "Hip Circumference"),
		cm("skirt_length_front", "Skirt Length (Front)"),
		cm("skirt_length_back", "Skirt Length (Back)"),
		cm("waist_to_hip", "Waist to Hip"),
	}},
	Blazer: {Name: "Blazer/Jacket Measurements", Fields: []models.MeasurementField{
		cm("chest_circumference", "Chest Circumference"),
		cm("shoulder_width", "Shoulder Width"),
		cm("sleeve_length", "Sleeve Length"),
		cm("jacket_length_back", "Jacket Length (Back)"),
		cm("waist_circumference", "Waist Circumference"),
	}},
	Dress: {Name: "Dress/Pinafore Measurements", Fields: []models.MeasurementField{
		cm("bust_circumference", "Bust Circumference"),
		cm("waist_circumference", "Waist Circumference"),
		cm("hip_circumference", "Hip Circumference"),
		cm("dress_length_front", "Dress Length (Front)"),
		cm("shoulder_to_waist", "Shoulder to Waist"),
		cm("shoulder_width", "Shoulder Width"),
	}},
	General: {Name: "General Measurements", Fields: []models.MeasurementField{
		cm("height", "Height"),
		cm("chest", "Chest"),
		cm("waist", "Waist"),
		cm("hips", "Hips"),
	}},
}

// Infer picks the garment type from free text (display name, description...).
func Infer(texts ...string) Garment {
	haystack := strings.ToLower(strings.Join(texts, " "))
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(haystack, kw) {
				return r.garment
			}
		}
	}
	return General
}

// InferProduct runs Infer over everything the API tells us about a product.
func InferProduct(p models.Product) Garment {
	return Infer(p.GarmentTypeDisplay, p.GarmentType, p.Name, p.Description)
}

// Fields returns a copy of the fixed field list for g. Unknown types get the
// general list.
func Fields(g Garment) []models.MeasurementField {
	tpl, ok := table[g]
	if !ok {
		tpl = table[General]
	}
	return append([]models.MeasurementField(nil), tpl.Fields...)
}

// Form is the resolved second step of the measurement flow.
type Form struct {
	Garment    Garment
	Title      string
	Fields     []models.MeasurementField
	FromServer bool
}

// TemplateSource is the part of the API client that serves templates.
type TemplateSource interface {
	MeasurementTemplate(ctx context.Context, productID int64) (*models.MeasurementTemplate, error)
}

// Resolve returns the server template for product when it has at least one
// field, else the static table entry for the inferred garment. A failed
// template fetch falls back to the table as well, unless ctx is done.
func Resolve(ctx context.Context, src TemplateSource, product models.Product) (Form, error) {
	garment := InferProduct(product)

	if src != nil {
		tpl, err := src.MeasurementTemplate(ctx, product.ID)
		switch {
		case err == nil && len(tpl.Fields) > 0:
			return Form{
				Garment:    garment,
				Title:      tpl.Name,
				Fields:     tpl.Fields,
				FromServer: true,
			}, nil
		case err != nil && ctx.Err() != nil:
			return Form{}, err
		case err != nil:
			log.Printf("measurement: template for product %d unavailable, using %s table: %v", product.ID, garment, err)
		}
	}

	return Form{Garment: garment, Title: table[garment].Name, Fields: Fields(garment)}, nil
}

var validate = validator.New()

// Validate checks that every required field has a value and returns one
// message per missing field, keyed by field name.
func Validate(fields []models.MeasurementField, values map[string]string) map[string]string {
	problems := map[string]string{}
	for _, f := range fields {
		if f.Optional {
			continue
		}
		if err := validate.Var(strings.TrimSpace(values[f.Name]), "required"); err != nil {
			problems[f.Name] = fmt.Sprintf("%s is required", f.Label)
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// Coerce converts numeric-looking values to float64 and passes anything else
// through unchanged. Blank values are left out.
func Coerce(values map[string]string) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			out[k] = n
			continue
		}
		out[k] = v
	}
	return out
}
