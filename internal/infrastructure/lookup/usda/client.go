// Package usda implements the food lookup port against the USDA FoodData
// Central API, with rate limiting, retry, and response caching.
package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nutrilabel/v1/internal/domain/nutrition"
	"github.com/nutrilabel/v1/internal/ports/outbound"
	appErrors "github.com/nutrilabel/v1/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// nutrientIDMap maps FoodData Central nutrient IDs to tracked nutrients.
var nutrientIDMap = map[int]nutrition.Nutrient{
	1008: nutrition.Calories,           // Energy (kcal)
	1003: nutrition.ProteinG,           // Protein
	1004: nutrition.TotalFatG,          // Total lipid (fat)
	1005: nutrition.TotalCarbohydrateG, // Carbohydrate, by difference
	1258: nutrition.SaturatedFatG,      // Fatty acids, total saturated
	1257: nutrition.TransFatG,          // Fatty acids, total trans
	1253: nutrition.CholesterolMg,      // Cholesterol
	1093: nutrition.SodiumMg,           // Sodium, Na
	1079: nutrition.DietaryFiberG,      // Fiber, total dietary
	2000: nutrition.TotalSugarsG,       // Sugars, total including NLEA
	1235: nutrition.AddedSugarsG,       // Sugars, added
	1114: nutrition.VitaminDMcg,        // Vitamin D (D2 + D3)
	1087: nutrition.CalciumMg,          // Calcium, Ca
	1089: nutrition.IronMg,             // Iron, Fe
	1092: nutrition.PotassiumMg,        // Potassium, K
}

// preferredDataTypes orders search results: curated data beats branded.
var preferredDataTypes = map[string]int{
	"Foundation":     0,
	"SR Legacy":      1,
	"Survey (FNDDS)": 2,
	"Branded":        3,
}

// Config holds client settings.
type Config struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	RequestsPerSec float64
	Burst          int
	CacheTTL       time.Duration
	// RetryBaseDelay is the first backoff step; doubles per attempt up to
	// 30s.
	RetryBaseDelay time.Duration
}

// CacheObserver receives cache hit/miss events, typically backed by the
// metrics collector.
type CacheObserver interface {
	ObserveLookupCache(hit bool)
}

// Option configures optional client behavior.
type Option func(*Client)

// WithCacheObserver reports cache hits and misses to the given observer.
func WithCacheObserver(o CacheObserver) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// Client queries FoodData Central. It caches successful lookups and rate
// limits outbound requests; transient failures retry with exponential
// backoff before surfacing a lookup-unavailable error.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      outbound.CacheRepository
	observer   CacheObserver
	logger     *zap.Logger
}

// New creates a FoodData Central client. cache may be nil to disable caching.
func New(cfg Config, cache outbound.CacheRepository, logger *zap.Logger, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.nal.usda.gov/fdc/v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RequestsPerSec == 0 {
		cfg.RequestsPerSec = 2
	}
	if cfg.Burst == 0 {
		cfg.Burst = 4
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 7 * 24 * time.Hour
	}
	if cfg.RetryBaseDelay == 0 {
		cfg.RetryBaseDelay = time.Second
	}
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
		cache:      cache,
		logger:     logger.Named("usda-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ outbound.FoodLookup = (*Client)(nil)

// searchResponse is the /foods/search payload subset we consume.
type searchResponse struct {
	Foods []searchFood `json:"foods"`
}

type searchFood struct {
	FDCID           int            `json:"fdcId"`
	Description     string         `json:"description"`
	DataType        string         `json:"dataType"`
	ServingSize     float64        `json:"servingSize"`
	ServingSizeUnit string         `json:"servingSizeUnit"`
	FoodNutrients   []foodNutrient `json:"foodNutrients"`
	FoodPortions    []foodPortion  `json:"foodPortions"`
}

type foodNutrient struct {
	NutrientID int     `json:"nutrientId"`
	Value      float64 `json:"value"`
}

type foodPortion struct {
	GramWeight float64 `json:"gramWeight"`
	Amount     float64 `json:"amount"`
}

// Lookup searches FoodData Central for the food and returns its per-100g
// profile plus a typical serving weight when one is declared.
func (c *Client) Lookup(ctx context.Context, foodName string) (outbound.FoodRecord, error) {
	key := cacheKey(foodName)
	if c.cache != nil {
		if data, err := c.cache.Get(ctx, key); err == nil && data != nil {
			var rec outbound.FoodRecord
			if err := json.Unmarshal(data, &rec); err == nil {
				c.observeCache(true)
				return rec, nil
			}
		}
		c.observeCache(false)
	}

	body, err := c.search(ctx, foodName)
	if err != nil {
		return outbound.FoodRecord{}, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return outbound.FoodRecord{}, appErrors.NewLookupUnavailableError("USDA FoodData Central", err)
	}

	rec := bestMatch(resp.Foods)

	if c.cache != nil {
		if data, err := json.Marshal(rec); err == nil {
			if err := c.cache.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
				c.logger.Warn("Failed to cache food lookup", zap.String("food", foodName), zap.Error(err))
			}
		}
	}

	return rec, nil
}

// search issues the rate-limited, retried HTTP request.
func (c *Client) search(ctx context.Context, query string) ([]byte, error) {
	params := url.Values{}
	params.Set("api_key", c.cfg.APIKey)
	params.Set("query", query)
	params.Set("pageSize", "5")
	endpoint := fmt.Sprintf("%s/foods/search?%s", c.cfg.BaseURL, params.Encode())

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.cfg.RetryBaseDelay * time.Duration(1<<uint(attempt-1))
			if delay > 30*time.Second {
				delay = 30 * time.Second
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, appErrors.NewLookupUnavailableError("USDA FoodData Central", ctx.Err())
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, appErrors.NewLookupUnavailableError("USDA FoodData Central", err)
		}

		body, retryable, err := c.doRequest(ctx, endpoint)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		c.logger.Warn("USDA request failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return nil, appErrors.NewLookupUnavailableError("USDA FoodData Central", lastErr)
}

// doRequest performs one HTTP round trip. The second return value reports
// whether the failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, endpoint string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, true, err
		}
		return body, false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("usda api status %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("usda api status %d", resp.StatusCode)
	}
}

// bestMatch picks the highest-quality food from search results and maps it
// into a FoodRecord. An empty result set yields an unmatched record, not an
// error: a miss is a normal outcome.
func bestMatch(foods []searchFood) outbound.FoodRecord {
	if len(foods) == 0 {
		return outbound.FoodRecord{Matched: false}
	}

	best := foods[0]
	for _, f := range foods[1:] {
		if dataTypeRank(f.DataType) < dataTypeRank(best.DataType) {
			best = f
		}
	}

	profile := nutrition.NewProfile()
	for _, fn := range best.FoodNutrients {
		if n, ok := nutrientIDMap[fn.NutrientID]; ok {
			// Search results report nutrient values per 100g.
			profile.Set(n, fn.Value)
		}
	}

	return outbound.FoodRecord{
		Description:         best.Description,
		Profile:             profile,
		TypicalServingGrams: servingGrams(best),
		Matched:             true,
	}
}

// servingGrams extracts a per-item weight: food portions first, then the
// declared serving size when it is gram-denominated.
func servingGrams(f searchFood) float64 {
	for _, p := range f.FoodPortions {
		if p.GramWeight > 0 {
			amount := p.Amount
			if amount <= 0 {
				amount = 1
			}
			return p.GramWeight / amount
		}
	}
	unit := strings.ToLower(f.ServingSizeUnit)
	if f.ServingSize > 0 && (unit == "g" || unit == "grm" || unit == "gram") {
		return f.ServingSize
	}
	return 0
}

func dataTypeRank(dt string) int {
	if r, ok := preferredDataTypes[dt]; ok {
		return r
	}
	return len(preferredDataTypes)
}

func (c *Client) observeCache(hit bool) {
	if c.observer != nil {
		c.observer.ObserveLookupCache(hit)
	}
}

func cacheKey(foodName string) string {
	return "usda:search:" + strings.ToLower(strings.TrimSpace(foodName))
}
