package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/heatcal/pkg/config"
)

// ConfigOptions are the persistent flags shared by every command. Apart from
// File they are bound onto viper keys so they override file and env values.
type ConfigOptions struct {
	File string
}

func AddConfigArgs(cmd *cobra.Command, o *ConfigOptions, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.File, "config", "",
		"Config file. Defaults to .heatcal.yaml in $HEATCAL_CONFIG_PATH, ./ or $HOME.")
	flags.StringP("events", "e", "",
		"Event file (JSON, YAML or ICS). Without one, sample blog posts are shown.")
	flags.String("format", "", "Event file format. One of auto, json, yaml or ics.")
	flags.String("week-start", "", "First weekday column. One of monday or sunday.")
	flags.String("mode", "", "Default view when no period is given. One of month or year.")
	flags.String("log-level", "", "Log level. One of debug, info, warn or error.")

	bind := map[string]string{
		config.KeyEvents:    "events",
		config.KeyFormat:    "format",
		config.KeyWeekStart: "week-start",
		config.KeyMode:      "mode",
		config.KeyLogLevel:  "log-level",
	}
	for key, flag := range bind {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
}
