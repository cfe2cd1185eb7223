package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// AppName names the config directory and the environment prefix
const AppName = "lazyjson"

// Config holds all application configuration
type Config struct {
	UI     UIConfig     `mapstructure:"ui"`
	Query  QueryConfig  `mapstructure:"query"`
	Search SearchConfig `mapstructure:"search"`
	Data   DataConfig   `mapstructure:"data"`
	Log    LogConfig    `mapstructure:"log"`
}

type UIConfig struct {
	Theme        string `mapstructure:"theme"`
	MouseEnabled bool   `mapstructure:"mouse_enabled"`
	ShowTree     bool   `mapstructure:"show_tree"`
	TreeWidth    int    `mapstructure:"tree_width"`
	// PanelWidthRatio is the left pane's share of the pane area, in percent
	PanelWidthRatio int `mapstructure:"panel_width_ratio"`
}

type QueryConfig struct {
	Engine string `mapstructure:"engine"`
	// Initial is the query of the first child pane; empty means the
	// engine's identity
	Initial        string `mapstructure:"initial"`
	HistoryEnabled bool   `mapstructure:"history_enabled"`
	HistoryLimit   int    `mapstructure:"history_limit"`
}

type SearchConfig struct {
	SmartCase bool `mapstructure:"smart_case"`
}

type DataConfig struct {
	AllowComments bool   `mapstructure:"allow_comments"`
	Indent        string `mapstructure:"indent"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		UI: UIConfig{
			Theme:           "default",
			MouseEnabled:    true,
			ShowTree:        false,
			TreeWidth:       24,
			PanelWidthRatio: 50,
		},
		Query: QueryConfig{
			Engine:         "jq",
			Initial:        "",
			HistoryEnabled: true,
			HistoryLimit:   1000,
		},
		Search: SearchConfig{
			SmartCase: true,
		},
		Data: DataConfig{
			AllowComments: false,
			Indent:        "  ",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := GetDefaults()
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.mouse_enabled", d.UI.MouseEnabled)
	v.SetDefault("ui.show_tree", d.UI.ShowTree)
	v.SetDefault("ui.tree_width", d.UI.TreeWidth)
	v.SetDefault("ui.panel_width_ratio", d.UI.PanelWidthRatio)
	v.SetDefault("query.engine", d.Query.Engine)
	v.SetDefault("query.initial", d.Query.Initial)
	v.SetDefault("query.history_enabled", d.Query.HistoryEnabled)
	v.SetDefault("query.history_limit", d.Query.HistoryLimit)
	v.SetDefault("search.smart_case", d.Search.SmartCase)
	v.SetDefault("data.allow_comments", d.Data.AllowComments)
	v.SetDefault("data.indent", d.Data.Indent)
	v.SetDefault("log.file", d.Log.File)
}

// Load loads configuration. With an empty path the usual locations are
// searched and a missing file is not an error; an explicit path must exist.
// LAZYJSON_* environment variables override file values, e.g.
// LAZYJSON_QUERY_ENGINE=jmespath.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Add config paths in priority order
		if configDir, err := GetConfigPath(); err == nil {
			v.AddConfigPath(configDir)
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values the UI cannot work with
func (c *Config) Validate() error {
	switch c.UI.Theme {
	case "default", "catppuccin":
	default:
		return fmt.Errorf("invalid ui.theme %q: want default or catppuccin", c.UI.Theme)
	}
	if c.UI.PanelWidthRatio < 10 || c.UI.PanelWidthRatio > 90 {
		return fmt.Errorf("invalid ui.panel_width_ratio %d: want 10-90", c.UI.PanelWidthRatio)
	}
	if c.UI.TreeWidth < 8 {
		return fmt.Errorf("invalid ui.tree_width %d: want at least 8", c.UI.TreeWidth)
	}
	if c.Query.HistoryLimit < 0 {
		return fmt.Errorf("invalid query.history_limit %d", c.Query.HistoryLimit)
	}
	return nil
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// EnsureConfigPath creates the user config directory if needed
func EnsureConfigPath() (string, error) {
	dir, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}
