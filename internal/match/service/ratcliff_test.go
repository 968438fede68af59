package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "ESCRITORIO", "ESCRITORIO", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "SILLA", "", 0.0},
		{"classic block example", "ABCD", "BCDE", 0.75}, // block BCD, 2*3/8
		{"no overlap", "XY", "ZW", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, matchRatio(tt.a, tt.b), 1e-12)
		})
	}
}

func TestMatchRatioRange(t *testing.T) {
	pairs := [][2]string{
		{"ESCRITORIO 2 CAJONES 120X60X75", "ESCRITORIO CON CAJONES MEDIDAS 120X60X75"},
		{"SILLA ERGONOMICA", "SILLON GERENCIAL"},
		{"RESMA PAPEL CARTA", "ARCHIVERO METALICO"},
	}
	for _, p := range pairs {
		r := matchRatio(p[0], p[1])
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}
}

func TestMatchRatioRewardsContiguousRuns(t *testing.T) {
	// same multiset of characters, but the contiguous variant wins big
	assert.InDelta(t, 1.0, matchRatio("ABCDEF", "ABCDEF"), 1e-12)
	assert.Less(t, matchRatio("ABCDEF", "FEDCBA"), 0.4)
}
