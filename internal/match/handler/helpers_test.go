package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-service/internal/match/model"
)

func TestItemsFromMaps(t *testing.T) {
	m := model.ItemMapping{DescriptionKey: "DESCRIPCION", QtyKey: "CANTIDAD", HeaderRow: 1}
	recs := []map[string]string{
		{"DESCRIPCION": "ESCRITORIO 2 CAJONES", "CANTIDAD": "3"},
		{"DESCRIPCION": "SILLA ERGONOMICA", "CANTIDAD": ""},
		{"DESCRIPCION": "   ", "CANTIDAD": "5"},
	}

	items, err := itemsFromMaps(recs, m)
	require.NoError(t, err)
	require.Len(t, items, 2, "blank descriptions are skipped")
	assert.Equal(t, 3.0, items[0].Qty)
	assert.Equal(t, 1.0, items[1].Qty, "missing quantity defaults to 1")
}

func TestItemsFromMapsMissingColumn(t *testing.T) {
	m := model.ItemMapping{DescriptionKey: "DESCRIPCION", QtyKey: "CANTIDAD"}
	_, err := itemsFromMaps([]map[string]string{{"OTRA": "x"}}, m)
	assert.Error(t, err)
}

func TestItemsFromMapsEmpty(t *testing.T) {
	items, err := itemsFromMaps(nil, model.ItemMapping{DescriptionKey: "DESCRIPCION"})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFlattenItem(t *testing.T) {
	mr := model.MatchResponse{
		Item: "ESCRITORIO",
		Matches: []model.MatchResult{
			{Product: "A", Score: 0.9, NetPrice: 100, TotalPrice: 119},
			{Product: "B", Score: 0.5, NetPrice: 80, TotalPrice: 95.2},
		},
	}

	out := flattenItem(mr, 3)
	require.Len(t, out.Matches, 2)
	assert.Equal(t, 1, out.Matches[0].Rank)
	assert.Equal(t, 2, out.Matches[1].Rank)
	assert.InDelta(t, 300.0, out.Matches[0].NetPriceExtended, 1e-9)
	assert.InDelta(t, 357.0, out.Matches[0].TotalPriceExtended, 1e-9)
	assert.Equal(t, 3.0, out.Quantity)
}

func TestSmallConversions(t *testing.T) {
	assert.Equal(t, 7, atoi("7", 1))
	assert.Equal(t, 1, atoi("", 1))
	assert.Equal(t, 1, atoi("x", 1))

	assert.Equal(t, 0.25, toFloat("0.25", 0.19))
	assert.Equal(t, 0.19, toFloat("", 0.19))
	assert.Equal(t, 0.19, toFloat("NaN", 0.19))
}
