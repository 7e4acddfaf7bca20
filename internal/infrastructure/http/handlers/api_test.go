package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nutrilabel/v1/internal/application/label"
	appnutrition "github.com/nutrilabel/v1/internal/application/nutrition"
	"github.com/nutrilabel/v1/internal/infrastructure/lookup/table"
	"github.com/nutrilabel/v1/internal/infrastructure/monitoring"
	"github.com/nutrilabel/v1/internal/ports/outbound"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixedLookup returns a canned record for every query.
type fixedLookup struct {
	record outbound.FoodRecord
	err    error
}

func (f fixedLookup) Lookup(_ context.Context, _ string) (outbound.FoodRecord, error) {
	return f.record, f.err
}

func newTestHandlers(t *testing.T) *APIHandlers {
	t.Helper()
	logger := zap.NewNop()
	tbl := table.New()
	converter := appnutrition.NewConverter(tbl, nil, logger)
	service := appnutrition.NewService(converter, logger)
	return NewAPIHandlers(
		service,
		label.NewService(logger),
		tbl,
		fixedLookup{record: outbound.FoodRecord{Matched: false}},
		monitoring.New(prometheus.NewRegistry()),
		logger,
	)
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestConvert_Success(t *testing.T) {
	h := newTestHandlers(t)

	rec := doJSON(t, h.Convert, http.MethodPost, "/api/v1/convert",
		`{"ingredient": "flour", "quantity": 2, "unit": "cups"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.InDelta(t, 250.0, data["grams"].(float64), 1e-9)
	assert.Equal(t, "table", data["source"])
	assert.Equal(t, "high", data["confidence"])
}

func TestConvert_RejectsInvalidPayload(t *testing.T) {
	h := newTestHandlers(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing ingredient", `{"quantity": 1, "unit": "g"}`},
		{"zero quantity", `{"ingredient": "flour", "quantity": 0, "unit": "g"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h.Convert, http.MethodPost, "/api/v1/convert", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, decodeResponse(t, rec).Success)
		})
	}
}

func TestCalculateRecipe_Success(t *testing.T) {
	h := newTestHandlers(t)

	body := `{
		"name": "simple batch",
		"yield_weight_g": 250,
		"ingredients": [
			{"name": "a", "quantity": 200, "unit": "g", "nutrient_profile": {"calories": 100, "protein_g": 10}},
			{"name": "b", "quantity": 100, "unit": "g", "nutrient_profile": {"calories": 50, "protein_g": 0}}
		]
	}`
	rec := doJSON(t, h.CalculateRecipe, http.MethodPost, "/api/v1/recipes/nutrition", body)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.InDelta(t, 300.0, data["total_raw_weight_g"].(float64), 1e-9)
	per100g := data["nutrition_per_100g"].(map[string]interface{})
	assert.InDelta(t, 100.0, per100g["calories"].(float64), 0.01)
}

func TestCalculateRecipe_EmptyIngredients(t *testing.T) {
	h := newTestHandlers(t)

	rec := doJSON(t, h.CalculateRecipe, http.MethodPost, "/api/v1/recipes/nutrition",
		`{"name": "empty", "ingredients": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateLabel_Success(t *testing.T) {
	h := newTestHandlers(t)

	body := `{
		"name": "snack bar batch",
		"ingredients": [
			{"name": "a", "quantity": 400, "unit": "g", "nutrient_profile": {"calories": 233, "total_fat_g": 3.7, "sodium_mg": 466}}
		],
		"serving_size_g": 100,
		"serving_size_description": "1 bar",
		"servings_per_container": 4
	}`
	rec := doJSON(t, h.GenerateLabel, http.MethodPost, "/api/v1/recipes/label", body)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	lbl := data["label"].(map[string]interface{})
	assert.InDelta(t, 230.0, lbl["calories"].(float64), 1e-9)
	assert.Equal(t, "1 bar", lbl["serving_size_description"])
}

func TestListIngredients(t *testing.T) {
	h := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ingredients", nil)
	rec := httptest.NewRecorder()
	h.ListIngredients(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data)
}

func TestSearchFoods_RequiresQuery(t *testing.T) {
	h := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/foods/search", nil)
	rec := httptest.NewRecorder()
	h.SearchFoods(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/foods/search?q=banana", nil)
	rec = httptest.NewRecorder()
	h.SearchFoods(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSearchFoods_LookupDisabled(t *testing.T) {
	logger := zap.NewNop()
	tbl := table.New()
	converter := appnutrition.NewConverter(tbl, nil, logger)
	service := appnutrition.NewService(converter, logger)
	h := NewAPIHandlers(service, label.NewService(logger), tbl, nil, monitoring.New(prometheus.NewRegistry()), logger)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/foods/search?q=banana", nil)
	rec := httptest.NewRecorder()
	h.SearchFoods(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
