package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/directions"
	"route-optimizer-service/internal/adapters/geometry"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/adapters/solver"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/platform/logger"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/render"
	"route-optimizer-service/internal/services"
)

// main is the application composition root. It wires concrete adapters
// (Postgres or flat files, Redis, external directions and VRP providers)
// behind ports and starts the HTTP server. Every external dependency is
// optional: an empty environment still serves fully local optimizations.
func main() {
	// No .env file is fine: production supplies real environment variables.
	_ = godotenv.Load()

	log := logger.New(config.Get("LOG_LEVEL", "info"))
	port := config.Get("PORT", "8080")

	repo := buildRepository(log)
	baselineCache := buildBaselineCache(log)

	var baseline ports.BaselineProvider
	if key := os.Getenv("GOOGLE_MAPS_API_KEY"); key != "" {
		baseline = directions.NewGoogleDirectionsProvider(key, baselineCache, log)
	}

	var fleetSolver ports.FleetSolver
	if s := solver.NewManagedFleetSolver(os.Getenv("SOLVER_URL"), os.Getenv("SOLVER_API_KEY"), log); s.Configured() {
		fleetSolver = s
	}

	var geo ports.GeometryProvider
	if g := geometry.NewORSGeometryProvider(os.Getenv("ORS_API_KEY"), log); g.Configured() {
		geo = g
	}

	optimizer := &services.Optimizer{
		Solver:          fleetSolver,
		Baseline:        baseline,
		Log:             log,
		ExternalTimeout: config.GetDuration("EXTERNAL_TIMEOUT_SECONDS", 10*time.Second),
	}

	email := &render.EmailSender{
		Host: os.Getenv("SMTP_HOST"),
		Port: config.Get("SMTP_PORT", "587"),
		From: os.Getenv("SMTP_FROM"),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
	}

	router := api.NewRouter(optimizer, geo, repo, email, log)

	log.WithField("addr", ":"+port).Info("server listening")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildRepository prefers Postgres when DATABASE_URL is set and falls back
// to flat-file history under DATA_DIR otherwise.
func buildRepository(log *logger.Logger) ports.ReportRepository {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			log.WithError(err).Fatal("open database")
		}
		if err := repositories.InitSchema(context.Background(), conn); err != nil {
			log.WithError(err).Fatal("init schema")
		}
		log.Info("report history: postgres")
		return repositories.NewPostgresReportRepository(conn)
	}

	dir := config.Get("DATA_DIR", "data/history")
	repo, err := repositories.NewFileReportRepository(dir)
	if err != nil {
		log.WithError(err).Fatal("open history directory")
	}
	log.WithField("dir", dir).Info("report history: flat files")
	return repo
}

// buildBaselineCache returns a Redis-backed cache when REDIS_URL is set.
// Without it, baseline requests simply re-hit the provider.
func buildBaselineCache(log *logger.Logger) ports.BaselineCache {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.WithError(err).Fatal("parse REDIS_URL")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Warn("redis unreachable; baseline cache disabled")
		return nil
	}
	log.Info("baseline cache: redis")
	return cache.NewRedisBaselineCache(client)
}
