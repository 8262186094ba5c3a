package measurement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

func fieldNames(fields []models.MeasurementField) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func TestInferKeywordTable(t *testing.T) {
	cases := []struct {
		text string
		want Garment
	}{
		{"Grey Tunic", Tunic},
		{"School Trousers", Trousers},
		{"Track pants", Trousers},
		{"White short-sleeve shirt", Shirt},
		{"Girls Blouse", Shirt},
		{"Polo", Shirt},
		{"Pleated Skirt", Skirt},
		{"Navy BLAZER", Blazer},
		{"Winter jacket", Blazer},
		{"Summer dress", Dress},
		{"Pinafore", Dress},
		{"Tie", General},
		{"", General},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, Infer(tc.text))
		})
	}
}

func TestInferPrefersEarlierRule(t *testing.T) {
	// "tunic" is checked before "dress".
	assert.Equal(t, Tunic, Infer("Tunic dress"))
	assert.Equal(t, Trousers, Infer("Trousers with shirt"))
}

func TestFieldsPerGarment(t *testing.T) {
	cases := map[Garment][]string{
		Tunic:    {"chest_circumference", "waist_circumference", "hip_circumference", "shoulder_width", "tunic_length"},
		Trousers: {"waist_circumference", "hip_circumference", "front_rise", "back_rise", "inseam_length", "outseam_length", "thigh_circumference", "knee_circumference", "ankle_circumference"},
		Shirt:    {"neck_circumference", "chest_bust_circumference", "waist_circumference", "shoulder_width", "sleeve_length", "shirt_length_back"},
		Skirt:    {"waist_circumference", "hip_circumference", "skirt_length_front", "skirt_length_back", "waist_to_hip"},
		Blazer:   {"chest_circumference", "shoulder_width", "sleeve_length", "jacket_length_back", "waist_circumference"},
		Dress:    {"bust_circumference", "waist_circumference", "hip_circumference", "dress_length_front", "shoulder_to_waist", "shoulder_width"},
		General:  {"height", "chest", "waist", "hips"},
	}
	for g, want := range cases {
		assert.Equal(t, want, fieldNames(Fields(g)), string(g))
	}
	assert.Equal(t, cases[General], fieldNames(Fields("scarf")))

	for _, f := range Fields(General) {
		assert.Equal(t, "cm", f.Unit)
	}
}

func TestFieldsReturnsCopy(t *testing.T) {
	f := Fields(General)
	f[0].Name = "changed"
	assert.Equal(t, "height", Fields(General)[0].Name)
}

type fakeTemplates struct {
	tpl *models.MeasurementTemplate
	err error
}

func (f fakeTemplates) MeasurementTemplate(context.Context, int64) (*models.MeasurementTemplate, error) {
	return f.tpl, f.err
}

func TestResolvePrefersServerTemplate(t *testing.T) {
	product := models.Product{ID: 3, GarmentTypeDisplay: "Skirt"}
	src := fakeTemplates{tpl: &models.MeasurementTemplate{
		Name:   "Skirt Measurements",
		Fields: []models.MeasurementField{{Name: "waist_circumference", Label: "Waist Circumference", Unit: "cm"}},
	}}

	form, err := Resolve(context.Background(), src, product)
	require.NoError(t, err)
	assert.True(t, form.FromServer)
	assert.Equal(t, Skirt, form.Garment)
	assert.Equal(t, []string{"waist_circumference"}, fieldNames(form.Fields))
}

func TestResolveFallsBackToTable(t *testing.T) {
	product := models.Product{ID: 3, Description: "School trousers"}

	empty := fakeTemplates{tpl: &models.MeasurementTemplate{Name: "Custom Measurements"}}
	form, err := Resolve(context.Background(), empty, product)
	require.NoError(t, err)
	assert.False(t, form.FromServer)
	assert.Equal(t, Trousers, form.Garment)
	assert.Equal(t, fieldNames(Fields(Trousers)), fieldNames(form.Fields))

	failing := fakeTemplates{err: errors.New("connection refused")}
	form, err = Resolve(context.Background(), failing, product)
	require.NoError(t, err)
	assert.False(t, form.FromServer)
	assert.Len(t, form.Fields, len(Fields(Trousers)))
}

func TestResolveStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Resolve(ctx, fakeTemplates{err: context.Canceled}, models.Product{ID: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	fields := Fields(Trousers)
	values := map[string]string{}
	for _, f := range fields {
		values[f.Name] = "50"
	}
	delete(values, "knee_circumference")
	assert.Nil(t, Validate(fields, values))

	values["front_rise"] = "  "
	problems := Validate(fields, values)
	require.Len(t, problems, 1)
	assert.Equal(t, "Front Rise is required", problems["front_rise"])
}

func TestCoerce(t *testing.T) {
	got := Coerce(map[string]string{
		"chest":   "72.5",
		"waist":   " 60 ",
		"hips":    "about 80",
		"notes":   "loose fit",
		"height":  "",
		"strange": "NaN",
	})
	assert.Equal(t, map[string]any{
		"chest":   72.5,
		"waist":   60.0,
		"hips":    "about 80",
		"notes":   "loose fit",
		"strange": "NaN",
	}, got)
}
