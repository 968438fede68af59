package service

import "strings"

// Closed, hand-curated domain equivalences for the furniture / office /
// mobility-aid vocabulary seen in public-procurement requests. Both sides
// are already in normalized form. Institutions and vendors rarely agree on
// one word for the same product ("ARCHIVADOR" vs "ARCHIVERO"), and the
// candidate filter works on substrings of catalog names, so expansion
// happens at extraction time.
var synonyms = map[string][]string{
	"ARCHIVADOR": {"ARCHIVERO", "KARDEX"},
	"ARCHIVERO":  {"ARCHIVADOR", "KARDEX"},
	"KARDEX":     {"ARCHIVERO", "ARCHIVADOR"},
	"CAJONERA":   {"GAVETERO", "GABINETE"},
	"GAVETERO":   {"CAJONERA"},
	"ESCRITORIO": {"MESA", "MESON"},
	"MESA":       {"ESCRITORIO", "MESON"},
	"MESON":      {"MESA"},
	"ESTANTE":    {"REPISA", "ESTANTERIA"},
	"REPISA":     {"ESTANTE"},
	"ESTANTERIA": {"ESTANTE", "REPISA"},
	"SILLA":      {"SILLON"},
	"SILLON":     {"SILLA"},
	"CASILLERO":  {"LOCKER"},
	"LOCKER":     {"CASILLERO"},
	"TONER":      {"CARTUCHO"},
	"CARTUCHO":   {"TONER"},
	"RESMA":      {"PAPEL"},
	"BASTON":     {"MULETA"},
	"MULETA":     {"BASTON"},
	"ANDADOR":    {"CAMINADOR"},
	"CAMINADOR":  {"ANDADOR"},
}

// ExtractKeywords normalizes the text, splits on whitespace and keeps
// tokens that look like vocabulary: at least 3 characters and not purely
// numeric (counts and dimensions are noise here, they are handled by the
// measurement bonus instead). Each kept token is followed by its synonyms
// in table order. Duplicates are allowed; consumers treat the result as a
// set.
func ExtractKeywords(text string) []string {
	tokens := strings.Fields(Normalize(text))
	var kws []string
	for _, tok := range tokens {
		if len(tok) < 3 || isNumeric(tok) {
			continue
		}
		kws = append(kws, tok)
		kws = append(kws, synonyms[tok]...)
	}
	return kws
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
