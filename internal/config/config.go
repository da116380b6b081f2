package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/sorting"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAlgorithm      = "bubble"
	DefaultSize           = engine.DefaultSize
	DefaultDelayMs        = 200
	DefaultPollIntervalMs = 50
	DefaultTheme          = "cyberpunk"
	DefaultDataDir        = ".sortviz"
	DefaultListen         = ":8080"
	DefaultFrameRate      = 30
)

var ErrUnknownPreset = errors.New("unknown preset")

type Config struct {
	Algorithm      string `yaml:"algorithm"`
	Size           int    `yaml:"size"`
	DelayMs        int    `yaml:"delay_ms"`
	PollIntervalMs int    `yaml:"poll_interval_ms"`
	Seed           int64  `yaml:"seed"`
	Theme          string `yaml:"theme"`
	DataDir        string `yaml:"data_dir"`
	Listen         string `yaml:"listen"`
	FrameRate      int    `yaml:"frame_rate"`
	Record         bool   `yaml:"record"`

	// AllowedOrigins feeds the CORS policy of the HTTP server.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:      DefaultAlgorithm,
		Size:           DefaultSize,
		DelayMs:        DefaultDelayMs,
		PollIntervalMs: DefaultPollIntervalMs,
		Theme:          DefaultTheme,
		DataDir:        DefaultDataDir,
		Listen:         DefaultListen,
		FrameRate:      DefaultFrameRate,
		AllowedOrigins: []string{"*"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Clamp()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clamp pulls out-of-range values back into their allowed ranges. Bad values
// are never an error.
func (c *Config) Clamp() {
	c.Size = engine.ClampSize(c.Size)
	c.DelayMs = int(engine.ClampDelay(time.Duration(c.DelayMs)*time.Millisecond) / time.Millisecond)
	if c.PollIntervalMs <= 0 {
		c.PollIntervalMs = DefaultPollIntervalMs
	}
	if c.FrameRate <= 0 || c.FrameRate > 120 {
		c.FrameRate = DefaultFrameRate
	}
	if _, err := sorting.ParseAlgorithm(c.Algorithm); err != nil {
		c.Algorithm = DefaultAlgorithm
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
}

func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// GetAlgorithm returns the configured algorithm, falling back to bubble sort.
func (c *Config) GetAlgorithm() sorting.Algorithm {
	alg, _ := sorting.ParseAlgorithm(c.Algorithm)
	return alg
}

// Settings builds the playback settings described by c.
func (c *Config) Settings() *engine.Settings {
	return engine.NewSettings(c.Size, c.Delay())
}

func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		Seed:         c.Seed,
		PollInterval: c.PollInterval(),
		Algorithm:    c.GetAlgorithm(),
	}
}
