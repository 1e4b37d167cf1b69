package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree() (*cobra.Command, *cobra.Command) {
	root := &cobra.Command{Use: "bench-report"}
	root.PersistentFlags().String("log-level", "info", "")

	sub := &cobra.Command{Use: "gbench", RunE: func(*cobra.Command, []string) error { return nil }}
	sub.Flags().String("path", "", "")
	sub.Flags().String("time-unit", "ns", "")
	sub.Flags().StringSlice("tags", nil, "")
	root.AddCommand(sub)

	return root, sub
}

func TestBindFlags_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
log_level: debug
gbench:
  path: bench.json
  time_unit: us
  tags: [nightly, x86]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	root, sub := newTree()
	require.NoError(t, BindFlags(root, v, "BENCH_REPORT_TEST"))

	level, _ := root.PersistentFlags().GetString("log-level")
	assert.Equal(t, "debug", level)

	got, _ := sub.Flags().GetString("path")
	assert.Equal(t, "bench.json", got)

	unit, _ := sub.Flags().GetString("time-unit")
	assert.Equal(t, "us", unit)

	tags, _ := sub.Flags().GetStringSlice("tags")
	assert.Equal(t, []string{"nightly", "x86"}, tags)
}

func TestBindFlags_Env(t *testing.T) {
	t.Setenv("BENCH_REPORT_TEST_GBENCH_TIME_UNIT", "ms")

	root, sub := newTree()
	require.NoError(t, BindFlags(root, viper.New(), "BENCH_REPORT_TEST"))

	unit, _ := sub.Flags().GetString("time-unit")
	assert.Equal(t, "ms", unit)
}

func TestBindFlags_CommandLineWins(t *testing.T) {
	t.Setenv("BENCH_REPORT_TEST_GBENCH_PATH", "from-env.json")

	root, sub := newTree()
	require.NoError(t, sub.Flags().Set("path", "from-flag.json"))
	require.NoError(t, BindFlags(root, viper.New(), "BENCH_REPORT_TEST"))

	got, _ := sub.Flags().GetString("path")
	assert.Equal(t, "from-flag.json", got)
}

func TestBindFlags_InvalidValue(t *testing.T) {
	t.Setenv("BENCH_REPORT_TEST_GBENCH_VERBOSE", "maybe")

	root, sub := newTree()
	sub.Flags().Bool("verbose", false, "")

	err := BindFlags(root, viper.New(), "BENCH_REPORT_TEST")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"verbose"`)
}

func TestConfigKey(t *testing.T) {
	assert.Equal(t, "log_level", configKey("", "log-level"))
	assert.Equal(t, "db_seed.tests_csv", configKey("db_seed", "tests-csv"))
}
