package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const masked = "********"

var secretKeys = []string{"access_key_id", "secret_access_key"}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the settings merged from the config file, BENCH_REPORT_* environment variables
and defaults. S3 credentials are masked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := renderSettings(vConfig.AllSettings())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func renderSettings(settings map[string]any) (string, error) {
	maskSecrets(settings)

	out, err := yaml.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return string(out), nil
}

// maskSecrets replaces credential values at any depth.
func maskSecrets(settings map[string]any) {
	for k, v := range settings {
		if nested, ok := v.(map[string]any); ok {
			maskSecrets(nested)
			continue
		}
		for _, secret := range secretKeys {
			if k == secret && v != "" {
				settings[k] = masked
			}
		}
	}
}
