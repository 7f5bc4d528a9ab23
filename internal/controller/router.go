package controller

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/commercebridge/ondc-adapter/internal/callback"
	"github.com/commercebridge/ondc-adapter/internal/infrastructure/config"
	"github.com/commercebridge/ondc-adapter/internal/infrastructure/observability"
	customMW "github.com/commercebridge/ondc-adapter/internal/middleware"
	"github.com/commercebridge/ondc-adapter/internal/platform"
)

type RouterDeps struct {
	Runner     ActionRunner
	Dispatcher *callback.Dispatcher
	Platform   platform.Client
	Identity   config.ONDCConfig
	Metrics    *observability.Metrics
	CORSConfig config.CORSConfig
	Logger     zerolog.Logger
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	if deps.Metrics != nil {
		r.Use(customMW.Metrics(deps.Metrics))
	}

	healthH := NewHealthController(deps.Platform)
	transactionH := NewTransactionController(deps.Runner, deps.Logger, deps.Metrics)
	webhookH := NewWebhookController(deps.Dispatcher, deps.Identity, deps.Logger)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", transactionH.Search)
		r.Post("/select", transactionH.Select)
		r.Post("/init", transactionH.Init)
		r.Post("/confirm", transactionH.Confirm)
		r.Post("/status", transactionH.Status)
		r.Post("/update", transactionH.Update)
		r.Post("/cancel", transactionH.Cancel)
	})

	r.Post("/webhook/on_init", webhookH.OnInit)

	return r
}
