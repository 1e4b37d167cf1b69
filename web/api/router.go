package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cx-miguel-neiva/bench-report/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// store is the read side of the snapshot database.
type store interface {
	GetTestResults() ([]model.TestRecord, error)
	GetBenchmarkResults() ([]model.BenchmarkRecord, error)
	GetTestSummary() (model.TestSummary, error)
	GetBenchmarkSummary() (model.BenchmarkSummary, error)
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func newRouter(conn store, chartsDir string, origins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Tests
	r.Get("/api/tests", func(w http.ResponseWriter, r *http.Request) {
		results, err := conn.GetTestResults()
		respond(w, results, err, "Failed to fetch test results")
	})

	r.Get("/api/tests/summary", func(w http.ResponseWriter, r *http.Request) {
		summary, err := conn.GetTestSummary()
		respond(w, summary, err, "Failed to fetch test summary")
	})

	// Benchmarks
	r.Get("/api/benchmarks", func(w http.ResponseWriter, r *http.Request) {
		results, err := conn.GetBenchmarkResults()
		respond(w, results, err, "Failed to fetch benchmark results")
	})

	r.Get("/api/benchmarks/summary", func(w http.ResponseWriter, r *http.Request) {
		summary, err := conn.GetBenchmarkSummary()
		respond(w, summary, err, "Failed to fetch benchmark summary")
	})

	if chartsDir != "" {
		r.Handle("/charts/*", http.StripPrefix("/charts/", http.FileServer(http.Dir(chartsDir))))
	}

	return r
}

func respond(w http.ResponseWriter, v any, err error, failure string) {
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		log.Error().Err(err).Msg(failure)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": failure})
		return
	}
	json.NewEncoder(w).Encode(v)
}
