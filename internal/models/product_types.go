package models

import (
	"github.com/shopspring/decimal"
)

// Product is a uniform item sold for one school. Prices are kept exactly as
// the API sent them.
type Product struct {
	ID                 int64           `json:"id"`
	School             Ref[School]     `json:"school"`
	SchoolName         string          `json:"school_name"`
	Name               string          `json:"name,omitempty"`
	Description        string          `json:"description"`
	Image              string          `json:"image"`
	Price              decimal.Decimal `json:"price"`
	GarmentType        string          `json:"garment_type"`
	GarmentTypeDisplay string          `json:"garment_type_display"`
}

func (p *Product) RefID() int64 { return p.ID }

// DisplayName picks the most specific label the API gave us.
func (p Product) DisplayName() string {
	switch {
	case p.Name != "":
		return p.Name
	case p.GarmentTypeDisplay != "":
		return p.GarmentTypeDisplay
	default:
		return p.Description
	}
}

// MeasurementTemplate is the server-defined field list for one product.
type MeasurementTemplate struct {
	Name   string             `json:"name"`
	Fields []MeasurementField `json:"fields"`
}

// MeasurementField is one numeric input of a measurement form.
type MeasurementField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Unit     string `json:"unit,omitempty"`
	Optional bool   `json:"optional,omitempty"`
}
