package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"kpiboard/internal/db"
	"kpiboard/internal/domain/calendar"
	"kpiboard/internal/domain/directory"
	"kpiboard/internal/domain/reports"
	"kpiboard/internal/domain/scorecard"
	"kpiboard/internal/platform/config"
	"kpiboard/internal/platform/localcache"
	authhandler "kpiboard/internal/transport/http/handlers/auth"
	calendarhandler "kpiboard/internal/transport/http/handlers/calendar"
	directoryhandler "kpiboard/internal/transport/http/handlers/directory"
	reportshandler "kpiboard/internal/transport/http/handlers/reports"
	scorecardhandler "kpiboard/internal/transport/http/handlers/scorecards"
	"kpiboard/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	directoryStore := directory.NewStore(pool)
	reportsStore := reports.NewStore(pool)
	scorecardStore := scorecard.NewStore(pool)

	loader := calendar.Loader{
		Primary: calendar.Sources{
			Reports:    reportsStore,
			Scorecards: scorecardStore,
			Directory:  directoryStore,
		},
		Cache: localcache.New(),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(directoryStore, cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			directoryhandler.NewHandler(directoryStore).RegisterRoutes(r)
			reportshandler.NewHandler(reportsStore, cfg.UploadsDir, cfg.MaxUploadBytes).RegisterRoutes(r)
			scorecardhandler.NewHandler(scorecardStore, directoryStore).RegisterRoutes(r)
		})

		calendarhandler.NewHandler(loader, cfg.HorizonMonths).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	log.Printf("kpiboard server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
