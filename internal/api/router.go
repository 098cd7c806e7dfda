package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/metrics"
	"route-optimizer-service/internal/platform/logger"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/render"
	"route-optimizer-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters). Geometry and repo are optional and may be nil.
func NewRouter(
	optimizer *services.Optimizer,
	geometry ports.GeometryProvider,
	repo ports.ReportRepository,
	email *render.EmailSender,
	log *logger.Logger,
) http.Handler {
	mux := http.NewServeMux()

	optimizeHandler := &handlers.OptimizeHandler{
		Optimizer: optimizer,
		Geometry:  geometry,
		Repo:      repo,
		Log:       log,
	}
	uploadHandler := &handlers.UploadHandler{Log: log}
	sampleHandler := &handlers.SampleDataHandler{Log: log}
	healthHandler := &handlers.HealthHandler{Log: log}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/api/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/api/optimize/quick", optimizeHandler.QuickOptimize)
	mux.HandleFunc("/api/deliveries/upload", uploadHandler.Upload)
	mux.HandleFunc("/api/sample-data", sampleHandler.Sample)

	if repo != nil {
		historyHandler := &handlers.HistoryHandler{Repo: repo, Email: email, Log: log}
		mux.HandleFunc("/api/history", historyHandler.List)
		mux.HandleFunc("/api/history/", historyHandler.Detail)
	}

	metrics.RegisterDefault()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(log, mux)
}
