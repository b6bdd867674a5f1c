package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/hrut1234/quizapi/internal/api/http"
	"github.com/hrut1234/quizapi/internal/cache"
	"github.com/hrut1234/quizapi/internal/config"
	"github.com/hrut1234/quizapi/internal/db"
	"github.com/hrut1234/quizapi/internal/quiz"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	var store quiz.Store = quiz.NewSQLStore(dbh, cfg.DBDriver)
	if cfg.RedisAddr != "" {
		cc := cache.New(store, cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
		if err := cc.Ping(ctx); err != nil {
			log.Fatalf("redis ping failed: %v", err)
		}
		store = cc
	}
	svc := quiz.NewService(store)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "User-ID"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	api.Mount(r, svc)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, cache=%v)", cfg.HTTPAddr, cfg.DBDriver, cfg.RedisAddr != "")
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
