// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"github.com/nutrilabel/v1/internal/application/label"
	"github.com/nutrilabel/v1/internal/application/nutrition"
	"github.com/nutrilabel/v1/internal/infrastructure/cache"
	"github.com/nutrilabel/v1/internal/infrastructure/config"
	"github.com/nutrilabel/v1/internal/infrastructure/http/handlers"
	"github.com/nutrilabel/v1/internal/infrastructure/http/server"
	"github.com/nutrilabel/v1/internal/infrastructure/lookup/table"
	"github.com/nutrilabel/v1/internal/infrastructure/lookup/usda"
	"github.com/nutrilabel/v1/internal/infrastructure/monitoring"
	"github.com/nutrilabel/v1/internal/infrastructure/persistence/sqlite"
	"github.com/nutrilabel/v1/internal/ports/inbound"
	"github.com/nutrilabel/v1/internal/ports/outbound"
	"github.com/nutrilabel/v1/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MetricsModule,
	CacheModule,
	LookupModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// MetricsModule provides Prometheus collectors
var MetricsModule = fx.Provide(
	func() *monitoring.Metrics {
		return monitoring.New(prometheus.DefaultRegisterer)
	},
)

// CacheModule provides the lookup cache repository
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		switch cfg.Cache.Backend {
		case "redis":
			return cache.NewRedisCache(cfg, log)
		case "sqlite":
			return sqlite.New(cfg, log)
		default:
			log.Info("Using in-memory lookup cache")
			return cache.NewMemoryCache(), nil
		}
	},
)

// LookupModule provides the density table and the external food lookup
var LookupModule = fx.Provide(
	func() *table.Table {
		return table.New()
	},
	func(t *table.Table) outbound.DensityTable {
		return t
	},
	func(cfg *config.Config, cacheRepo outbound.CacheRepository, metrics *monitoring.Metrics, log *zap.Logger) outbound.FoodLookup {
		if !cfg.USDA.Enabled || cfg.USDA.APIKey == "" {
			log.Info("USDA lookup disabled; conversion will skip the USDA tier")
			return nil
		}
		return usda.New(usda.Config{
			BaseURL:        cfg.USDA.BaseURL,
			APIKey:         cfg.USDA.APIKey,
			Timeout:        cfg.USDA.Timeout,
			MaxRetries:     cfg.USDA.MaxRetries,
			RequestsPerSec: cfg.USDA.RequestsPerSec,
			Burst:          cfg.USDA.Burst,
			CacheTTL:       cfg.Cache.FoodTTL,
		}, cacheRepo, log, usda.WithCacheObserver(metrics))
	},
)

// ServiceModule provides the application services
var ServiceModule = fx.Provide(
	func(cfg *config.Config, t outbound.DensityTable, lookup outbound.FoodLookup, log *zap.Logger) *nutrition.Converter {
		return nutrition.NewConverter(t, lookup, log,
			nutrition.WithLookupTimeout(cfg.Conversion.LookupTimeout))
	},
	func(cfg *config.Config, converter *nutrition.Converter, log *zap.Logger) *nutrition.Service {
		return nutrition.NewService(converter, log,
			nutrition.WithMaxConcurrency(cfg.Conversion.MaxConcurrency))
	},
	func(svc *nutrition.Service) inbound.NutritionService {
		return svc
	},
	func(log *zap.Logger) *label.Service {
		return label.NewService(log)
	},
)

// HTTPModule provides the HTTP surface
var HTTPModule = fx.Provide(
	handlers.NewAPIHandlers,
	server.NewServer,
)

// LifecycleModule starts and stops the HTTP server with the fx app
var LifecycleModule = fx.Invoke(
	func(lc fx.Lifecycle, srv *server.Server, cfg *config.Config, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				log.Info("Starting application",
					zap.String("name", cfg.App.Name),
					zap.String("version", cfg.App.Version),
					zap.String("environment", cfg.App.Environment),
				)
				go func() {
					if err := srv.Start(); err != nil {
						log.Error("HTTP server exited", zap.Error(err))
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				if err := srv.Shutdown(ctx); err != nil {
					return fmt.Errorf("failed to shut down http server: %w", err)
				}
				return nil
			},
		})
	},
)
