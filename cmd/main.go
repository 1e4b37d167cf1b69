package cmd

import (
	"github.com/cx-miguel-neiva/bench-report/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version = "0.0.0"

var (
	configFilePath string
	logLevel       string
	logJSON        bool
	vConfig        = viper.New()
)

const configFileFlag = "config"

var rootCmd = &cobra.Command{
	Use:   "bench-report",
	Short: "Test and benchmark report converter",
	Long: `A command-line tool that converts Google Test XML reports and Google Benchmark
JSON reports into CSV tables, and renders those tables as HTML charts.`,
	SilenceUsage: true,
}

func Execute() error {
	config.SetDefaults(vConfig)

	cobra.OnInitialize(initialize)

	rootCmd.PersistentFlags().StringVar(&configFilePath, configFileFlag, "", "Path to the config file")
	cobra.CheckErr(rootCmd.MarkPersistentFlagFilename(configFileFlag, "yaml", "yml", "json"))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON instead of console output")

	rootCmd.AddCommand(
		gtestCmd(),
		gbenchCmd(),
		convertCmd(),
		chartCmd(),
		dbSeedCmd(),
		summaryCmd(),
		uploadCmd(),
		configCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Error executing root command")
		return err
	}
	return nil
}
