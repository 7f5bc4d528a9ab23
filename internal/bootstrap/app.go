package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/commercebridge/ondc-adapter/internal/callback"
	"github.com/commercebridge/ondc-adapter/internal/infrastructure/config"
	"github.com/commercebridge/ondc-adapter/internal/infrastructure/observability"
	"github.com/commercebridge/ondc-adapter/internal/pipeline"
	"github.com/commercebridge/ondc-adapter/internal/platform"
	"github.com/commercebridge/ondc-adapter/pkg/retry"
)

// App wires the adapter's long-lived dependencies.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Metrics    *observability.Metrics
	Platform   platform.Client
	Dispatcher *callback.Dispatcher
	Runner     *pipeline.Runner
}

func New(ctx context.Context, serviceName string, metricsNamespace string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.Info().Str("service", serviceName).Msg("Starting")

	if cfg.Observability.EnableTracing {
		tp, err := observability.InitTracer(serviceName, cfg.Observability.JaegerEndpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		} else {
			go func() {
				<-ctx.Done()
				observability.Shutdown(context.Background(), tp)
			}()
			logger.Info().Msg("Tracing enabled")
		}
	}

	metrics := observability.NewMetrics(metricsNamespace, nil)
	logger.Info().Msg("Metrics initialized")

	client := platform.NewWooClient(platform.WooConfig{
		BaseURL:        cfg.Platform.BaseURL,
		ConsumerKey:    cfg.Platform.ConsumerKey,
		ConsumerSecret: cfg.Platform.ConsumerSecret,
		Version:        cfg.Platform.Version,
		Timeout:        cfg.Platform.Timeout,
	}, logger)

	// The platform may be down at boot; pipelines retry per call, so this
	// probe only warns.
	if err := client.Ping(ctx); err != nil {
		logger.Warn().Err(err).Str("base_url", cfg.Platform.BaseURL).Msg("Commerce platform unreachable at startup")
	} else {
		logger.Info().Str("base_url", cfg.Platform.BaseURL).Msg("Connected to commerce platform")
	}

	callbackPolicy := retry.Config{
		MaxAttempts:  cfg.Callback.MaxAttempts,
		InitialDelay: cfg.Callback.InitialDelay,
		MaxDelay:     cfg.Callback.AttemptTimeout,
		Multiplier:   2.0,
	}
	dispatcher := callback.NewDispatcher(callbackPolicy, cfg.Callback.AttemptTimeout, logger, metrics)

	runner := pipeline.NewRunner(pipeline.Deps{
		Platform:   client,
		Dispatcher: dispatcher,
		Identity:   cfg.ONDC,
		Store:      cfg.Store,
		Retry: retry.Config{
			MaxAttempts:  cfg.Retry.MaxAttempts,
			InitialDelay: cfg.Retry.InitialDelay,
			MaxDelay:     cfg.Retry.MaxDelay,
			Multiplier:   cfg.Retry.Multiplier,
		},
		Logger:  logger,
		Metrics: metrics,
	})

	return &App{
		Config:     cfg,
		Logger:     logger,
		Metrics:    metrics,
		Platform:   client,
		Dispatcher: dispatcher,
		Runner:     runner,
	}, nil
}
