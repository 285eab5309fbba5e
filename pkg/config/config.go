// Package config loads heatcal settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"tableflip.dev/heatcal/pkg/calendar"
	"tableflip.dev/heatcal/pkg/heatmap"
	"tableflip.dev/heatcal/pkg/source"
)

// Config keys shared with command flags.
const (
	KeyEvents    = "events"
	KeyFormat    = "format"
	KeyMode      = "mode"
	KeyWeekStart = "week_start"
	KeyBlend     = "blend"
	KeyEmpty     = "colors.empty"
	KeyLow       = "colors.low"
	KeyHigh      = "colors.high"
	KeyHover     = "colors.hover"
	KeyLogFile   = "log.file"
	KeyLogLevel  = "log.level"
)

// Colors are the palette hex codes.
type Colors struct {
	Empty string `mapstructure:"empty" json:"empty"`
	Low   string `mapstructure:"low" json:"low"`
	High  string `mapstructure:"high" json:"high"`
	Hover string `mapstructure:"hover" json:"hover"`
}

// Logging configures logrus output.
type Logging struct {
	File  string `mapstructure:"file" json:"file,omitempty"`
	Level string `mapstructure:"level" json:"level"`
}

// Config is the resolved configuration.
type Config struct {
	Events    string  `mapstructure:"events" json:"events,omitempty"`
	Format    string  `mapstructure:"format" json:"format"`
	Mode      string  `mapstructure:"mode" json:"mode"`
	WeekStart string  `mapstructure:"week_start" json:"week_start"`
	Blend     string  `mapstructure:"blend" json:"blend"`
	Colors    Colors  `mapstructure:"colors" json:"colors"`
	Log       Logging `mapstructure:"log" json:"log"`
}

// Default returns the built-in settings.
func Default() *Config {
	p := heatmap.DefaultPalette()
	return &Config{
		Format:    string(source.FormatAuto),
		Mode:      heatmap.ModeMonth.String(),
		WeekStart: calendar.Monday.String(),
		Blend:     string(heatmap.BlendRGB),
		Colors: Colors{
			Empty: p.Empty.Hex(),
			Low:   p.Low.Hex(),
			High:  p.High.Hex(),
			Hover: p.Hover.Hex(),
		},
		Log: Logging{Level: logrus.InfoLevel.String()},
	}
}

// SetDefaults registers every key on v so env overrides and Unmarshal see
// them.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyEvents, d.Events)
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeyMode, d.Mode)
	v.SetDefault(KeyWeekStart, d.WeekStart)
	v.SetDefault(KeyBlend, d.Blend)
	v.SetDefault(KeyEmpty, d.Colors.Empty)
	v.SetDefault(KeyLow, d.Colors.Low)
	v.SetDefault(KeyHigh, d.Colors.High)
	v.SetDefault(KeyHover, d.Colors.Hover)
	v.SetDefault(KeyLogFile, d.Log.File)
	v.SetDefault(KeyLogLevel, d.Log.Level)
}

// Load reads .heatcal.yaml (or file, when set) into v and resolves the
// result. A missing config file is fine; a malformed one is not.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("HEATCAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		expanded, err := homedir.Expand(file)
		if err != nil {
			return nil, fmt.Errorf("config: expand %s: %w", file, err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName(".heatcal") // .yaml is implicit
		if override := os.Getenv("HEATCAL_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath("./")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize fills blank values with defaults and canonicalizes spelling.
func (c *Config) Normalize() {
	d := Default()
	fill := func(s *string, def string) {
		*s = strings.ToLower(strings.TrimSpace(*s))
		if *s == "" {
			*s = def
		}
	}
	fill(&c.Format, d.Format)
	fill(&c.Mode, d.Mode)
	fill(&c.WeekStart, d.WeekStart)
	fill(&c.Blend, d.Blend)
	fill(&c.Colors.Empty, d.Colors.Empty)
	fill(&c.Colors.Low, d.Colors.Low)
	fill(&c.Colors.High, d.Colors.High)
	fill(&c.Colors.Hover, d.Colors.Hover)
	fill(&c.Log.Level, d.Log.Level)
	c.Events = strings.TrimSpace(c.Events)
	c.Log.File = strings.TrimSpace(c.Log.File)
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if _, err := source.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: format: %w", err)
	}
	if _, err := c.ViewMode(); err != nil {
		return err
	}
	if _, err := c.Weeks(); err != nil {
		return fmt.Errorf("config: week_start: %w", err)
	}
	if _, err := c.Palette(); err != nil {
		return fmt.Errorf("config: colors: %w", err)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// ViewMode is the starting mode.
func (c *Config) ViewMode() (heatmap.Mode, error) {
	switch c.Mode {
	case "month", "":
		return heatmap.ModeMonth, nil
	case "year":
		return heatmap.ModeYear, nil
	}
	return heatmap.ModeMonth, fmt.Errorf("config: mode: unknown %q, expected month or year", c.Mode)
}

// Weeks is the configured week start.
func (c *Config) Weeks() (calendar.WeekStart, error) {
	return calendar.ParseWeekStart(c.WeekStart)
}

// Palette builds the colour palette.
func (c *Config) Palette() (heatmap.Palette, error) {
	blend, err := heatmap.ParseBlend(c.Blend)
	if err != nil {
		return heatmap.Palette{}, err
	}
	return heatmap.ParsePalette(c.Colors.Empty, c.Colors.Low, c.Colors.High, c.Colors.Hover, blend)
}

// Source opens the configured event file.
func (c *Config) Source(log logrus.FieldLogger) (*source.Source, error) {
	f, err := source.ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}
	return source.New(c.Events, f, log)
}

// Logger builds a logger writing to log.file, or to fallback when no file is
// configured. The returned closer releases the file.
func (c *Config) Logger(fallback io.Writer) (*logrus.Logger, io.Closer, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("config: log.level: %w", err)
	}
	l := logrus.New()
	l.SetLevel(level)
	l.SetOutput(fallback)
	if c.Log.File == "" {
		return l, noClose{}, nil
	}

	path, err := homedir.Expand(c.Log.File)
	if err != nil {
		return nil, nil, fmt.Errorf("config: log.file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("config: log.file: %w", err)
	}
	l.SetOutput(f)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return l, f, nil
}

type noClose struct{}

func (noClose) Close() error { return nil }
