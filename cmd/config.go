package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cx-miguel-neiva/bench-report/internal/config"
	"github.com/cx-miguel-neiva/bench-report/internal/db"
	"github.com/cx-miguel-neiva/bench-report/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func initialize() {
	if configFilePath != "" {
		vConfig.SetConfigFile(configFilePath)
		cobra.CheckErr(vConfig.ReadInConfig())
	}

	cobra.CheckErr(utils.BindFlags(rootCmd, vConfig, config.EnvPrefix))
	cobra.CheckErr(setupLogging(logLevel, logJSON))

	if configFilePath != "" {
		log.Info().Str("config", configFilePath).Msg("Loaded configuration file")
	}
}

func setupLogging(level string, asJSON bool) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zerolog.SetGlobalLevel(lvl)
	if asJSON {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = log.Logger.Level(lvl)

	return nil
}

// openDatabase opens the snapshot database, creating its directory if needed.
func openDatabase(dbPath string) (*db.Connection, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required (use --db)")
	}

	absDbPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for db: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absDbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	return db.NewConnection(absDbPath)
}

// ensureParentDir creates the directory that will hold path.
func ensureParentDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	return nil
}
