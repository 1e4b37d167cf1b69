package utils

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindFlags fills every flag the user did not set on the command line from
// the environment or the config file held by v. Flag "time-unit" on command
// "gbench" is looked up as key "gbench.time_unit" and env PREFIX_GBENCH_TIME_UNIT.
// Persistent flags of the root command are looked up without a section.
func BindFlags(cmd *cobra.Command, v *viper.Viper, envPrefix string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return bindCommand(cmd, v, "")
}

func bindCommand(cmd *cobra.Command, v *viper.Viper, section string) error {
	var bindErr error

	bind := func(f *pflag.Flag) {
		if bindErr != nil || f.Changed {
			return
		}

		key := configKey(section, f.Name)
		if err := v.BindEnv(key); err != nil {
			bindErr = fmt.Errorf("failed to bind env for flag %q: %w", f.Name, err)
			return
		}

		if !v.IsSet(key) {
			return
		}

		value := v.Get(key)
		if list, ok := value.([]any); ok {
			for _, item := range list {
				if err := f.Value.Set(fmt.Sprint(item)); err != nil {
					bindErr = fmt.Errorf("invalid value for flag %q: %w", f.Name, err)
					return
				}
			}
		} else if err := f.Value.Set(fmt.Sprint(value)); err != nil {
			bindErr = fmt.Errorf("invalid value for flag %q: %w", f.Name, err)
			return
		}
		f.Changed = true
	}

	cmd.LocalFlags().VisitAll(bind)
	if bindErr != nil {
		return bindErr
	}

	for _, sub := range cmd.Commands() {
		if err := bindCommand(sub, v, sectionFor(sub)); err != nil {
			return err
		}
	}

	return nil
}

// sectionFor names the config section of a subcommand: "db:seed" becomes "db_seed".
func sectionFor(cmd *cobra.Command) string {
	return strings.ReplaceAll(cmd.Name(), ":", "_")
}

func configKey(section, flag string) string {
	name := strings.ReplaceAll(flag, "-", "_")
	if section == "" {
		return name
	}
	return section + "." + name
}
