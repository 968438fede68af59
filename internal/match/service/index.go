package service

import (
	"fmt"
	"strings"

	"match-service/internal/match/model"
	"match-service/internal/utils"
)

// Index holds the catalog in scoring-ready form. Built once, read-only
// afterwards; a changed catalog source means a rebuild, never a mutation.
type Index struct {
	Entries []model.CatalogEntry
}

// ResolveColumn finds the real key in a record for a wanted column name.
// Supports "a|b|c" alternatives, then falls back to normalized-equality and
// containment so that composite headers like "precio venta Neto" still
// resolve from "precio".
func ResolveColumn(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	var nAlts []string
	for _, a := range alts {
		nAlts = append(nAlts, strings.TrimSpace(Normalize(a)))
	}

	bestKey := ""
	bestScore := 0
	for k := range rec {
		nk := strings.TrimSpace(Normalize(k))
		if nk == "" {
			continue
		}
		for _, n := range nAlts {
			if nk == n {
				return k
			}
		}
		score := 0
		for _, n := range nAlts {
			if n != "" && (strings.Contains(nk, n) || strings.Contains(n, nk)) && len(n) > score {
				score = len(n)
			}
		}
		if score > bestScore {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}

// RowsFromMaps resolves the mapping against the source and converts records
// into raw rows. The schema check runs once for the whole source: if the
// name or price column cannot be resolved the build aborts with
// model.ErrMissingColumns. Rows without a product name are dropped
// silently; they can neither be matched nor displayed.
func RowsFromMaps(recs []map[string]string, m model.Mapping) ([]model.RawRow, error) {
	if len(recs) == 0 {
		return nil, nil
	}

	nameKey := ResolveColumn(recs[0], m.NameKey)
	priceKey := ResolveColumn(recs[0], m.PriceKey)
	var missing []string
	if nameKey == "" {
		missing = append(missing, m.NameKey)
	}
	if priceKey == "" {
		missing = append(missing, m.PriceKey)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrMissingColumns, strings.Join(missing, ", "))
	}

	brandKey := ResolveColumn(recs[0], m.BrandKey)
	skuKey := ResolveColumn(recs[0], m.SkuKey)
	costKey := ResolveColumn(recs[0], m.CostKey)

	rows := make([]model.RawRow, 0, len(recs))
	for _, rec := range recs {
		name := strings.TrimSpace(rec[nameKey])
		if name == "" {
			continue
		}
		row := model.RawRow{Name: name}
		if v, ok := utils.ParseFloatCL(rec[priceKey]); ok && v >= 0 {
			row.NetPrice = v
		}
		if brandKey != "" {
			row.Brand = strings.TrimSpace(rec[brandKey])
		}
		if skuKey != "" {
			row.Sku = strings.TrimSpace(rec[skuKey])
		}
		if costKey != "" {
			if v, ok := utils.ParseFloatCL(rec[costKey]); ok && v >= 0 {
				c := v
				row.NetCost = &c
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// BuildIndex precomputes the derived fields of every row. O(n) and done
// once per catalog. A zero-entry catalog yields a working index together
// with model.ErrEmptyCatalog so the caller can decide how loud to be.
func BuildIndex(rows []model.RawRow) (*Index, error) {
	idx := &Index{Entries: make([]model.CatalogEntry, 0, len(rows))}
	for _, r := range rows {
		nn := Normalize(r.Name)
		idx.Entries = append(idx.Entries, model.CatalogEntry{
			Name:          r.Name,
			NormName:      nn,
			Brand:         r.Brand,
			NormBrand:     strings.TrimSpace(Normalize(r.Brand)),
			MeasureTokens: MeasureTokens(nn),
			NetPrice:      r.NetPrice,
			NetCost:       r.NetCost,
			Sku:           r.Sku,
		})
	}
	if len(idx.Entries) == 0 {
		return idx, model.ErrEmptyCatalog
	}
	return idx, nil
}

// MergeCosts attaches net costs from a side table keyed by SKU, falling
// back to the product name. Entries absent from the table keep their
// current cost; the index never invents one.
func (idx *Index) MergeCosts(costs map[string]float64) {
	if len(costs) == 0 {
		return
	}
	for i := range idx.Entries {
		e := &idx.Entries[i]
		if e.Sku != "" {
			if c, ok := costs[e.Sku]; ok {
				v := c
				e.NetCost = &v
				continue
			}
		}
		if c, ok := costs[e.Name]; ok {
			v := c
			e.NetCost = &v
		}
	}
}
