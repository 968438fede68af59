package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-service/internal/config"
)

func testConfig() config.Config {
	return config.Config{MaxUploadMB: 16, TaxRate: 0.19, DefaultTopN: 5}
}

func multipartRequest(t *testing.T, catalogCSV, itemsCSV string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("catalog", "catalogo.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(catalogCSV))
	require.NoError(t, err)

	fw, err = mw.CreateFormFile("items", "solicitudes.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(itemsCSV))
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/match", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestMatchHandler(t *testing.T) {
	catalog := "PRODUCTO,PRECIO,MARCA\n" +
		"ESCRITORIO 2 CAJONES 120X60X75,100000,\n" +
		"SILLA ERGONOMICA,50000,ACME\n"
	items := "DESCRIPCION,CANTIDAD\n" +
		"ESCRITORIO CON CAJONES MEDIDAS 120X60X75,2\n"

	rec := httptest.NewRecorder()
	h := Match(testConfig(), zerolog.Nop())
	h.ServeHTTP(rec, multipartRequest(t, catalog, items, map[string]string{"top_n": "1"}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	require.Len(t, res.Results, 1)
	item := res.Results[0]
	assert.Equal(t, "ESCRITORIO CON CAJONES MEDIDAS 120X60X75", item.Item)
	assert.Equal(t, 2.0, item.Quantity)

	require.Len(t, item.Matches, 1)
	best := item.Matches[0]
	assert.Equal(t, "ESCRITORIO 2 CAJONES 120X60X75", best.Product)
	assert.Equal(t, 1, best.Rank)
	assert.InDelta(t, 119000.0, best.TotalPrice, 1e-6)
	assert.InDelta(t, 238000.0, best.TotalPriceExtended, 1e-6)
	assert.Greater(t, best.Score, 0.8)

	assert.Equal(t, 1, res.Stats.TotalItems)
	assert.Equal(t, 1, res.Stats.Matched)
	assert.Equal(t, 1, res.Opts.TopN)
	assert.InDelta(t, 0.19, res.Opts.TaxRate, 1e-12)
}

func TestMatchHandlerSchemaError(t *testing.T) {
	catalog := "COLUMNA RARA,OTRA\nx,1\n"
	items := "DESCRIPCION\nESCRITORIO\n"

	rec := httptest.NewRecorder()
	h := Match(testConfig(), zerolog.Nop())
	h.ServeHTTP(rec, multipartRequest(t, catalog, items, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing required columns")
}

func TestMatchHandlerEmptyCatalog(t *testing.T) {
	// header resolves, but every row lacks a product name
	catalog := "PRODUCTO,PRECIO\n,100\n ,200\n"
	items := "DESCRIPCION\nESCRITORIO\n"

	rec := httptest.NewRecorder()
	h := Match(testConfig(), zerolog.Nop())
	h.ServeHTTP(rec, multipartRequest(t, catalog, items, nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Results, 1)
	assert.Empty(t, res.Results[0].Matches)
	assert.Equal(t, 1, res.Stats.NoMatch)
}

func TestMatchHandlerMissingFile(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/match", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	h := Match(testConfig(), zerolog.Nop())
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
