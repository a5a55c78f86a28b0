package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableNumberCoercion(t *testing.T) {
	tests := []struct {
		raw  string
		want *float64
	}{
		{`4.5`, f(4.5)},
		{`"4.5"`, f(4.5)},
		{`null`, nil},
		{`"NaN"`, nil},
		{`"Infinity"`, nil},
		{`""`, nil},
		{`"forty"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var n nullableNumber
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &n))
			assert.Equal(t, tt.want, n.value)
		})
	}
}

func f(v float64) *float64 { return &v }

func TestDecodeRecipesArray(t *testing.T) {
	data := []byte(`[{"title":"Apple Pie","rating":4.8,"nutrients":{"calories":"380 kcal"}}]`)

	records, err := decodeRecipes(data)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Apple Pie", records[0].Title)
}

func TestDecodeRecipesIndexKeyed(t *testing.T) {
	data := []byte(`{"0":{"title":"Apple Pie"},"1":{"title":"Cake","rating":"NaN"}}`)

	records, err := decodeRecipes(data)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestToModelKeepsDisplayStrings(t *testing.T) {
	raw := rawRecipe{
		Title: "Apple Pie",
		Nutrients: map[string]json.RawMessage{
			"calories": json.RawMessage(`"380 kcal"`),
			"protein":  json.RawMessage(`12`),
		},
	}

	m := raw.toModel()
	assert.Equal(t, "380 kcal", m.Nutrients["calories"])
	assert.Equal(t, "12", m.Nutrients["protein"])
	assert.NotEqual(t, "", m.ID.String())
	assert.Nil(t, m.Rating)
}
