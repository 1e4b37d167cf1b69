package main

import (
	"os"

	"github.com/cx-miguel-neiva/bench-report/internal/config"
	"github.com/cx-miguel-neiva/bench-report/internal/db"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	dbPath := pflag.String("db", config.DefaultDBPath, "Path to the SQLite database file")
	chartsDir := pflag.String("charts-dir", "", "Directory with rendered HTML charts to serve under /charts")
	addr := pflag.String("addr", ":8080", "Address to listen on")
	origins := pflag.StringSlice("allowed-origin", []string{"http://localhost:5173"}, "Origins allowed by CORS")
	pflag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if _, err := os.Stat(*dbPath); err != nil {
		log.Fatal().Err(err).Str("db", *dbPath).Msg("Database file is not readable")
	}

	log.Info().Str("db", *dbPath).Msg("Attempting to connect to database")

	conn, err := db.NewConnection(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer conn.Close()

	srv := newServer(*addr, newRouter(conn, *chartsDir, *origins))

	log.Info().Str("addr", *addr).Msg("Server starting")
	if err := srv.ListenAndServe(); err != nil {
		log.Error().Err(err).Msg("Failed to start server")
	}
}
