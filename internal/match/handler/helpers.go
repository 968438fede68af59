package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"match-service/internal/config"
	"match-service/internal/match/model"
	matchSvc "match-service/internal/match/service"
	"match-service/internal/utils"
)

// Column defaults cover the headers seen in Compra Ágil requests and vendor
// price lists; "a|b" alternatives resolve against whatever the file has.
const (
	defCatalogName  = "PRODUCTO|NOMBRE"
	defCatalogPrice = "PRECIO VENTA NETO|PRECIO NETO|PRECIO"
	defCatalogBrand = "MARCA"
	defCatalogSku   = "SKU|CODIGO"
	defCatalogCost  = "COSTO NETO|COSTO"
	defItemDesc     = "DESCRIPCION|NOMBRE PRODUCTO|PRODUCTO"
	defItemQty      = "CANTIDAD"
)

type requestItem struct {
	Description string
	Qty         float64
}

type matchRow struct {
	model.MatchResult
	Rank               int     `json:"rank"`
	NetPriceExtended   float64 `json:"net_price_extended"`
	TotalPriceExtended float64 `json:"total_price_extended"`
}

type itemResult struct {
	Item     string     `json:"item"`
	Quantity float64    `json:"quantity"`
	Matches  []matchRow `json:"matches"`
}

type batchStats struct {
	TotalItems    int `json:"total_items"`
	Matched       int `json:"matched"`
	LowConfidence int `json:"low_confidence"`
	NoMatch       int `json:"no_match"`
}

type response struct {
	Results []itemResult  `json:"results"`
	Stats   batchStats    `json:"stats"`
	Opts    model.Options `json:"opts"`
}

func catalogMappingFromForm(r *http.Request) model.Mapping {
	return model.Mapping{
		NameKey:   formOr(r, "catalog_name", defCatalogName),
		PriceKey:  formOr(r, "catalog_price", defCatalogPrice),
		BrandKey:  formOr(r, "catalog_brand", defCatalogBrand),
		SkuKey:    formOr(r, "catalog_sku", defCatalogSku),
		CostKey:   formOr(r, "catalog_cost", defCatalogCost),
		HeaderRow: atoi(r.FormValue("catalog_header_row"), 1),
	}
}

func itemMappingFromForm(r *http.Request) model.ItemMapping {
	return model.ItemMapping{
		DescriptionKey: formOr(r, "item_description", defItemDesc),
		QtyKey:         formOr(r, "item_qty", defItemQty),
		HeaderRow:      atoi(r.FormValue("item_header_row"), 1),
	}
}

func optionsFromForm(r *http.Request, cfg config.Config) model.Options {
	return model.Options{
		TopN:     atoi(r.FormValue("top_n"), cfg.DefaultTopN),
		TaxRate:  toFloat(r.FormValue("tax_rate"), cfg.TaxRate),
		MinScore: toFloat(r.FormValue("min_score"), 0.5),
	}
}

// itemsFromMaps extracts descriptions and quantities from the items file.
// The description column is required; quantity defaults to 1.
func itemsFromMaps(recs []map[string]string, m model.ItemMapping) ([]requestItem, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	descKey := matchSvc.ResolveColumn(recs[0], m.DescriptionKey)
	if descKey == "" {
		return nil, errors.New("items file is missing a description column: " + m.DescriptionKey)
	}
	qtyKey := matchSvc.ResolveColumn(recs[0], m.QtyKey)

	items := make([]requestItem, 0, len(recs))
	for _, rec := range recs {
		desc := strings.TrimSpace(rec[descKey])
		if desc == "" {
			continue
		}
		qty := 1.0
		if qtyKey != "" {
			if v, ok := utils.ParseFloatCL(rec[qtyKey]); ok && v > 0 {
				qty = v
			}
		}
		items = append(items, requestItem{Description: desc, Qty: qty})
	}
	return items, nil
}

// flattenItem attaches rank and quantity-extended totals to each match.
func flattenItem(mr model.MatchResponse, qty float64) itemResult {
	out := itemResult{Item: mr.Item, Quantity: qty, Matches: make([]matchRow, 0, len(mr.Matches))}
	for i, m := range mr.Matches {
		out.Matches = append(out.Matches, matchRow{
			MatchResult:        m,
			Rank:               i + 1,
			NetPriceExtended:   m.NetPrice * qty,
			TotalPriceExtended: m.TotalPrice * qty,
		})
	}
	return out
}

func formOr(r *http.Request, key, def string) string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
