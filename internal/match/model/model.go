package model

// Mapping describes how catalog columns map onto engine fields.
// Keys support "a|b" alternatives, resolved against the source header.
type Mapping struct {
	NameKey   string // product name column (required)
	PriceKey  string // net sale price column (required)
	BrandKey  string // brand column (optional)
	SkuKey    string // SKU column (optional)
	CostKey   string // net cost column (optional)
	HeaderRow int    // header row (1-based)
}

// ItemMapping describes the request-items source.
type ItemMapping struct {
	DescriptionKey string // item description column (required)
	QtyKey         string // quantity column (optional, defaults to 1)
	HeaderRow      int
}

// Options are the per-run matching knobs.
type Options struct {
	TaxRate  float64 `json:"taxRate"`  // VAT applied on top of net prices
	TopN     int     `json:"topN"`     // matches returned per item
	MinScore float64 `json:"minScore"` // confidence floor for the stats counters
}

// RawRow is one usable catalog row after column resolution.
type RawRow struct {
	Name     string
	NetPrice float64
	Brand    string
	Sku      string
	NetCost  *float64 // nil when the source carries no cost
}

// CatalogEntry is an immutable indexed product. Derived fields are computed
// once at build time and never mutated afterwards, so entries are safe to
// share across concurrent match calls.
type CatalogEntry struct {
	Name          string
	NormName      string
	Brand         string
	NormBrand     string // empty when no brand
	MeasureTokens []string
	NetPrice      float64
	NetCost       *float64
	Sku           string
}

// Query is the transient per-call view of one input description.
type Query struct {
	Raw           string
	Norm          string
	Keywords      []string
	MeasureTokens []string
}

// Candidate pairs a catalog entry with its computed score for one query.
type Candidate struct {
	Entry *CatalogEntry
	Score float64
}

// MatchResult is one ranked match with pricing attached.
// Cost-derived fields are omitted when the entry has no cost.
type MatchResult struct {
	Product    string   `json:"product"`
	Sku        string   `json:"sku,omitempty"`
	Score      float64  `json:"score"`
	NetPrice   float64  `json:"net_price"`
	TotalPrice float64  `json:"total_price"`
	NetCost    *float64 `json:"net_cost,omitempty"`
	NetMargin  *float64 `json:"net_margin,omitempty"`
	MarginPct  *float64 `json:"margin_pct,omitempty"`
}

// MatchResponse is the per-description output of the engine.
type MatchResponse struct {
	Item    string        `json:"item"`
	Matches []MatchResult `json:"matches"`
}
