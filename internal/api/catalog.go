package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

//
// --- Schools, products, measurement templates ---
//

// ListSchools returns every active school.
func (c *Client) ListSchools(ctx context.Context) ([]models.School, error) {
	var out []models.School
	if err := c.do(ctx, http.MethodGet, "/schools/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSchool returns one school.
func (c *Client) GetSchool(ctx context.Context, id int64) (*models.School, error) {
	var out models.School
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/schools/%d/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProducts returns the products of one school. The id is taken as a
// string because the admin dashboard issues the query with an empty id.
func (c *Client) ListProducts(ctx context.Context, schoolID string) ([]models.Product, error) {
	var out []models.Product
	path := "/schools/" + url.PathEscape(schoolID) + "/products/"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MeasurementTemplate returns the server-defined measurement fields of a product.
func (c *Client) MeasurementTemplate(ctx context.Context, productID int64) (*models.MeasurementTemplate, error) {
	query := url.Values{"product_id": {strconv.FormatInt(productID, 10)}}
	var out models.MeasurementTemplate
	if err := c.do(ctx, http.MethodGet, "/measurements/template/", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
