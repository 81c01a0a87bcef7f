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
	Statcast Statcast `yaml:"statcast"`
	Savant   Savant   `yaml:"savant"`
	Names    Names    `yaml:"names"`
	Video    Video    `yaml:"video"`
	Zone     Zone     `yaml:"zone"`
	Output   Output   `yaml:"output"`
}

type Statcast struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	ChunkDays      int    `yaml:"chunk_days"`
}

type Savant struct {
	BaseURL             string `yaml:"base_url"`
	Headless            bool   `yaml:"headless"`
	SettleSearchSeconds int    `yaml:"settle_search_seconds"`
	SettleClickSeconds  int    `yaml:"settle_click_seconds"`
}

type Names struct {
	BaseURL string `yaml:"base_url"`
}

type Video struct {
	FFmpeg         string  `yaml:"ffmpeg"`
	FFprobe        string  `yaml:"ffprobe"`
	MaxClipSeconds float64 `yaml:"max_clip_seconds"`
	LeadInSeconds  float64 `yaml:"lead_in_seconds"`
}

type Zone struct {
	Correction float64 `yaml:"correction"`
}

type Output struct {
	DataDir       string `yaml:"data_dir"`
	DefaultOutput string `yaml:"default_output"`
}

// ConfigDir returns the XDG config directory for the tool.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "highlight")
}

// DataDir returns the XDG data directory for the tool.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "highlight")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/highlight/config.yaml > ./config.yaml
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
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'highlight init' to create a default config",
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

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded default config is invalid: %v", err))
	}
	return cfg
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Statcast: Statcast{
			BaseURL:        "https://baseballsavant.mlb.com",
			TimeoutSeconds: 60,
			ChunkDays:      5,
		},
		Savant: Savant{
			BaseURL:             "https://baseballsavant.mlb.com",
			Headless:            true,
			SettleSearchSeconds: 3,
			SettleClickSeconds:  5,
		},
		Names: Names{BaseURL: "https://statsapi.mlb.com"},
		Video: Video{
			FFmpeg:         "ffmpeg",
			FFprobe:        "ffprobe",
			MaxClipSeconds: 20,
			LeadInSeconds:  2,
		},
		Zone:   Zone{Correction: 0.3},
		Output: Output{DefaultOutput: "highlights.mp4"},
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
