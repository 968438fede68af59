package service

import (
	"sort"
	"strings"

	"match-service/internal/match/model"
)

const (
	brandBonus    = 0.15 // flat: a brand mention is binary evidence
	measureWeight = 0.20 // scaled by the query-side token overlap
)

// Matcher scores free-text descriptions against an immutable catalog index.
// It keeps no per-call state, so one Matcher serves concurrent MatchOne
// calls without locking.
type Matcher struct {
	idx     *Index
	taxRate float64
}

func NewMatcher(idx *Index, taxRate float64) *Matcher {
	return &Matcher{idx: idx, taxRate: taxRate}
}

func buildQuery(description string) model.Query {
	n := Normalize(description)
	return model.Query{
		Raw:           description,
		Norm:          n,
		Keywords:      ExtractKeywords(description),
		MeasureTokens: MeasureTokens(n),
	}
}

// candidates returns the entries whose normalized name contains at least
// one keyword as a substring. Falling back to the full catalog when nothing
// matches (or there are no keywords) means the engine always attempts a
// match instead of returning nothing.
func (m *Matcher) candidates(keywords []string) []*model.CatalogEntry {
	if len(keywords) == 0 {
		return m.allEntries()
	}
	kwSet := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		kwSet[kw] = struct{}{}
	}

	var out []*model.CatalogEntry
	for i := range m.idx.Entries {
		e := &m.idx.Entries[i]
		for kw := range kwSet {
			if strings.Contains(e.NormName, kw) {
				out = append(out, e)
				break
			}
		}
	}
	if len(out) == 0 {
		return m.allEntries()
	}
	return out
}

func (m *Matcher) allEntries() []*model.CatalogEntry {
	out := make([]*model.CatalogEntry, len(m.idx.Entries))
	for i := range m.idx.Entries {
		out[i] = &m.idx.Entries[i]
	}
	return out
}

// score is the unweighted sum of base similarity, brand bonus and
// measurement bonus, clipped to 1. No term goes negative, so the clip only
// trims an over-generous sum.
func score(q model.Query, e *model.CatalogEntry) float64 {
	s := matchRatio(q.Norm, e.NormName)

	if e.NormBrand != "" && strings.Contains(q.Norm, e.NormBrand) {
		s += brandBonus
	}

	s += measureWeight * measureOverlap(q.MeasureTokens, e.MeasureTokens)

	if s > 1 {
		s = 1
	}
	return s
}

// measureOverlap treats measurement tokens as multisets. The denominator is
// the query's token count: a query naming fewer dimensions than the entry
// should not be penalized for the entry's extra numbers.
func measureOverlap(query, entry []string) float64 {
	if len(query) == 0 || len(entry) == 0 {
		return 0
	}
	avail := make(map[string]int, len(entry))
	for _, t := range entry {
		avail[t]++
	}
	inter := 0
	for _, t := range query {
		if avail[t] > 0 {
			avail[t]--
			inter++
		}
	}
	if inter == 0 {
		return 0
	}
	return float64(inter) / float64(len(query))
}

// selectTop ranks by score descending and truncates. The stable sort keeps
// catalog order among ties for reproducible output.
func selectTop(cands []model.Candidate, n int) []model.Candidate {
	if n <= 0 {
		return nil
	}
	sorted := make([]model.Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// priceResult derives the money figures for one entry. Margin fields exist
// only when the entry carries a cost.
func priceResult(e *model.CatalogEntry, taxRate float64) model.MatchResult {
	r := model.MatchResult{
		Product:    e.Name,
		Sku:        e.Sku,
		NetPrice:   e.NetPrice,
		TotalPrice: e.NetPrice * (1 + taxRate),
	}
	if e.NetCost != nil {
		cost := *e.NetCost
		margin := r.TotalPrice - cost
		pct := 0.0
		if r.TotalPrice > 0 {
			pct = margin / r.TotalPrice
		}
		r.NetCost = &cost
		r.NetMargin = &margin
		r.MarginPct = &pct
	}
	return r
}

// MatchOne runs the full pipeline for a single description: normalize,
// extract keywords, prune candidates, score, rank, truncate, price. An
// empty matches slice is a valid outcome, not an error.
func (m *Matcher) MatchOne(description string, topN int) model.MatchResponse {
	q := buildQuery(description)
	cands := m.candidates(q.Keywords)

	scored := make([]model.Candidate, 0, len(cands))
	for _, e := range cands {
		scored = append(scored, model.Candidate{Entry: e, Score: score(q, e)})
	}

	top := selectTop(scored, topN)
	matches := make([]model.MatchResult, 0, len(top))
	for _, c := range top {
		r := priceResult(c.Entry, m.taxRate)
		r.Score = c.Score
		matches = append(matches, r)
	}
	return model.MatchResponse{Item: description, Matches: matches}
}

// MatchMany applies MatchOne to each description, preserving input order.
// Calls are independent; callers may fan out if they want parallelism.
func (m *Matcher) MatchMany(descriptions []string, topN int) []model.MatchResponse {
	out := make([]model.MatchResponse, 0, len(descriptions))
	for _, d := range descriptions {
		out = append(out, m.MatchOne(d, topN))
	}
	return out
}
