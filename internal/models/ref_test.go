package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefAcceptsEveryWireShape(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantID    int64
		wantValue bool
	}{
		{"null", `null`, 0, false},
		{"number", `7`, 7, false},
		{"numeric string", `"7"`, 7, false},
		{"empty string", `""`, 0, false},
		{"object", `{"id":7,"name":"Lusaka Primary"}`, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref Ref[School]
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ref))
			assert.Equal(t, tt.wantID, ref.ID)
			assert.Equal(t, tt.wantValue, ref.Value != nil)
		})
	}
}

func TestRefRejectsNonNumericString(t *testing.T) {
	var ref Ref[School]
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &ref))
}

func TestCartItemSchoolIDFromNestedProduct(t *testing.T) {
	var item CartItem
	raw := `{"id":1,"product":{"id":3,"school":{"id":7,"name":"Lusaka Primary"}},"quantity":2,` +
		`"student_name":"Ann","price":"100.00","total":"200.00"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &item))

	assert.Equal(t, int64(3), item.Product.ID)
	assert.Equal(t, int64(7), item.SchoolID())
	assert.Equal(t, "Ann", item.StudentName)
	assert.Equal(t, "200.00", item.Total.StringFixed(2))

	var bare CartItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"product":3}`), &bare))
	assert.Zero(t, bare.SchoolID())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "IN PRODUCTION", StatusLabel(OrderInProduction))
	assert.Equal(t, "PICKED UP", StatusLabel(ShipmentPickedUp))
}

func TestCartItemCount(t *testing.T) {
	var nilCart *Cart
	assert.Zero(t, nilCart.ItemCount())
	assert.True(t, nilCart.Empty())

	c := &Cart{Items: []CartItem{{Quantity: 2}, {Quantity: 3}}}
	assert.Equal(t, 5, c.ItemCount())
	assert.False(t, c.Empty())
}
