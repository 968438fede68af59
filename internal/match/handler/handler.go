package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"match-service/internal/config"
	"match-service/internal/fileio"
	"match-service/internal/match/model"
	matchSvc "match-service/internal/match/service"
)

// Match returns the handler for POST /match: multipart upload of a catalog
// file and an items file, column mappings and knobs as form values, ranked
// matches with pricing as JSON.
func Match(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log := logger
		if rid := r.Header.Get("X-Request-ID"); rid != "" {
			log = logger.With().Str("req_id", rid).Logger()
		}

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		catalogFile, catalogHdr, err := r.FormFile("catalog")
		if err != nil {
			http.Error(w, "missing catalog file: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer catalogFile.Close()

		itemsFile, itemsHdr, err := r.FormFile("items")
		if err != nil {
			http.Error(w, "missing items file: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer itemsFile.Close()

		catalogMapping := catalogMappingFromForm(r)
		itemMapping := itemMappingFromForm(r)
		opts := optionsFromForm(r, cfg)

		catalogRecs, err := fileio.ReadAnyMaps(catalogFile, catalogHdr.Filename, catalogMapping.HeaderRow)
		if err != nil {
			http.Error(w, "failed to read catalog: "+err.Error(), http.StatusBadRequest)
			return
		}
		itemRecs, err := fileio.ReadAnyMaps(itemsFile, itemsHdr.Filename, itemMapping.HeaderRow)
		if err != nil {
			http.Error(w, "failed to read items: "+err.Error(), http.StatusBadRequest)
			return
		}

		rows, err := matchSvc.RowsFromMaps(catalogRecs, catalogMapping)
		if err != nil {
			// schema problems are fatal for the whole request
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		idx, err := matchSvc.BuildIndex(rows)
		if err != nil {
			if !errors.Is(err, model.ErrEmptyCatalog) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			// an empty catalog still answers, with empty matches per item
			log.Warn().Str("catalog", catalogHdr.Filename).Msg("catalog has no usable rows")
		}

		items, err := itemsFromMaps(itemRecs, itemMapping)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		matcher := matchSvc.NewMatcher(idx, opts.TaxRate)

		res := response{
			Results: make([]itemResult, 0, len(items)),
			Opts:    opts,
		}
		res.Stats.TotalItems = len(items)

		for _, it := range items {
			mr := matcher.MatchOne(it.Description, opts.TopN)
			res.Results = append(res.Results, flattenItem(mr, it.Qty))

			switch {
			case len(mr.Matches) == 0:
				res.Stats.NoMatch++
			case mr.Matches[0].Score >= opts.MinScore:
				res.Stats.Matched++
			default:
				res.Stats.LowConfidence++
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}

		log.Info().
			Int("catalog_rows", len(rows)).
			Int("items", len(items)).
			Int("matched", res.Stats.Matched).
			Int("no_match", res.Stats.NoMatch).
			Dur("elapsed", time.Since(start)).
			Msg("match done")
	}
}
