package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Output   Output   `yaml:"output"`
	Language Language `yaml:"language"`
	Alerts   Alerts   `yaml:"alerts"`
	Logging  Logging  `yaml:"logging"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Language struct {
	Pivot      string     `yaml:"pivot"`
	Translator Translator `yaml:"translator"`
}

type Translator struct {
	Enabled        bool   `yaml:"enabled"`
	URL            string `yaml:"url"`
	APIKeyEnv      string `yaml:"api_key_env"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Alerts holds threshold overrides for the alert engine.
type Alerts struct {
	SentimentCritical        float64 `yaml:"sentiment_critical"`
	FoodQualityCritical      float64 `yaml:"food_quality_critical"`
	RoomQualityCritical      float64 `yaml:"room_quality_critical"`
	IssueClusterMinFrequency int     `yaml:"issue_cluster_min_frequency"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// ConfigDir returns the XDG config directory for carepulse.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "carepulse")
}

// DataDir returns the XDG data directory for carepulse.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "carepulse")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/carepulse/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'carepulse init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// Default returns the built-in configuration without reading any file.
func Default() *Config {
	cfg, _ := parse(nil)
	return cfg
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Language: Language{
			Pivot: "en",
			Translator: Translator{
				Enabled:        false,
				URL:            "http://localhost:5000",
				APIKeyEnv:      "LIBRETRANSLATE_API_KEY",
				TimeoutSeconds: 10,
			},
		},
		Alerts: Alerts{
			SentimentCritical:        -0.7,
			FoodQualityCritical:      2.0,
			RoomQualityCritical:      2.0,
			IssueClusterMinFrequency: 5,
		},
		Logging: Logging{Level: "INFO", Pretty: true},
	}

	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
