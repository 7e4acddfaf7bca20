// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/nutrilabel/v1/internal/application/label"
	"github.com/nutrilabel/v1/internal/domain/nutrition"
	"github.com/nutrilabel/v1/internal/domain/recipe"
	"github.com/nutrilabel/v1/internal/infrastructure/monitoring"
	"github.com/nutrilabel/v1/internal/ports/inbound"
	"github.com/nutrilabel/v1/internal/ports/outbound"
	appErrors "github.com/nutrilabel/v1/pkg/errors"
	"go.uber.org/zap"
)

// APIHandlers handles REST API requests
type APIHandlers struct {
	nutritionService inbound.NutritionService
	labelService     *label.Service
	densityTable     outbound.DensityTable
	foodLookup       outbound.FoodLookup
	metrics          *monitoring.Metrics
	validate         *validator.Validate
	logger           *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(
	nutritionService inbound.NutritionService,
	labelService *label.Service,
	densityTable outbound.DensityTable,
	foodLookup outbound.FoodLookup,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *APIHandlers {
	return &APIHandlers{
		nutritionService: nutritionService,
		labelService:     labelService,
		densityTable:     densityTable,
		foodLookup:       foodLookup,
		metrics:          metrics,
		validate:         validator.New(),
		logger:           logger.Named("api"),
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// ingredientRequest is one recipe line in a calculation request.
type ingredientRequest struct {
	Name     string             `json:"name" validate:"required"`
	RawText  string             `json:"raw_text"`
	Quantity float64            `json:"quantity" validate:"gt=0"`
	Unit     string             `json:"unit" validate:"required"`
	Profile  map[string]float64 `json:"nutrient_profile,omitempty"`
}

// recipeRequest is the calculation request payload.
type recipeRequest struct {
	Name         string              `json:"name" validate:"required"`
	Ingredients  []ingredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	YieldWeightG *float64            `json:"yield_weight_g,omitempty"`
}

// labelRequest extends a calculation request with serving information.
type labelRequest struct {
	recipeRequest
	ServingSizeG           float64 `json:"serving_size_g" validate:"required,gt=0"`
	ServingSizeDescription string  `json:"serving_size_description"`
	ServingsPerContainer   float64 `json:"servings_per_container" validate:"required,gt=0"`
}

// Convert handles POST /api/v1/convert
func (h *APIHandlers) Convert(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.ConvertCommand
	if !h.decode(w, r, &cmd) {
		return
	}

	conv, err := h.nutritionService.Convert(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.ObserveConversion(string(conv.Source), string(conv.Confidence))
	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: conv})
}

// CalculateRecipe handles POST /api/v1/recipes/nutrition
func (h *APIHandlers) CalculateRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.nutritionService.CalculateRecipe(r.Context(), req.toDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.ObserveRecipeCalculation(len(result.Ingredients))
	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}

// GenerateLabel handles POST /api/v1/recipes/label
func (h *APIHandlers) GenerateLabel(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.nutritionService.CalculateRecipe(r.Context(), req.toDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	serving, err := h.nutritionService.PerServing(result.NutritionPer100g, recipe.ServingConfig{
		ServingSizeG:           req.ServingSizeG,
		ServingSizeDescription: req.ServingSizeDescription,
		ServingsPerContainer:   req.ServingsPerContainer,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	lbl, err := h.labelService.Render(serving)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.ObserveRecipeCalculation(len(result.Ingredients))
	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: map[string]interface{}{
		"calculation": result,
		"serving":     serving,
		"label":       lbl,
	}})
}

// ListIngredients handles GET /api/v1/ingredients
func (h *APIHandlers) ListIngredients(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: h.densityTable.Entries()})
}

// SearchFoods handles GET /api/v1/foods/search
func (h *APIHandlers) SearchFoods(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, r, appErrors.NewBadRequestError("query parameter q is required"))
		return
	}
	if h.foodLookup == nil {
		h.writeError(w, r, appErrors.NewLookupUnavailableError("usda", nil))
		return
	}

	record, err := h.foodLookup.Lookup(r.Context(), query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: record})
}

// HealthCheck handles GET /health
func (h *APIHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// toDomain maps the request payload onto the domain recipe.
func (req recipeRequest) toDomain() recipe.Recipe {
	rec := recipe.Recipe{
		Name:         req.Name,
		YieldWeightG: req.YieldWeightG,
		Ingredients:  make([]recipe.Ingredient, 0, len(req.Ingredients)),
	}
	for _, in := range req.Ingredients {
		ing := recipe.NewIngredient(in.Name, in.RawText, in.Quantity, in.Unit)
		if len(in.Profile) > 0 {
			profile := nutrition.NewProfile()
			for k, v := range in.Profile {
				// Unrecognized nutrient keys are dropped by Set.
				profile.Set(nutrition.Nutrient(k), v)
			}
			ing.Profile = profile
		}
		rec.Ingredients = append(rec.Ingredients, ing)
	}
	return rec
}

// decode parses and validates a JSON request body. It writes the error
// response itself and reports whether the handler should continue.
func (h *APIHandlers) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, r, appErrors.NewBadRequestError("invalid JSON payload"))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.writeError(w, r, appErrors.NewValidationError(err.Error()))
		return false
	}
	return true
}

func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := appErrors.Wrap(err, "request failed")
	requestID := middleware.GetReqID(r.Context())

	if appErr.StatusCode() >= 500 {
		h.logger.Error("Request failed",
			zap.String("request_id", requestID),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	} else {
		h.logger.Debug("Request rejected",
			zap.String("request_id", requestID),
			zap.String("path", r.URL.Path),
			zap.String("code", string(appErr.Code)),
		)
	}

	h.writeJSON(w, appErr.StatusCode(), APIResponse{
		Success: false,
		Error:   appErrors.ToErrorResponse(appErr, requestID).Error,
	})
}
