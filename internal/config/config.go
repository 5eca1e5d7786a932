package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	OutputDir string          `yaml:"output_dir"`
	Audio     AudioConfig     `yaml:"audio"`
	STT       STTConfig       `yaml:"stt"`
	Diarize   DiarizeConfig   `yaml:"diarize"`
	Summarize SummarizeConfig `yaml:"summarize"`
	LogLevel  string          `yaml:"log_level"`
}

// AudioConfig holds capture settings for the two recording channels.
type AudioConfig struct {
	SampleRate   uint32 `yaml:"sample_rate"`
	Channels     uint32 `yaml:"channels"`
	MicDevice    string `yaml:"mic_device"`    // capture device name substring; empty = system default
	SystemDevice string `yaml:"system_device"` // loopback capture device name substring (e.g. "BlackHole")
}

// STTConfig selects and configures the transcription backend.
type STTConfig struct {
	Backend string `yaml:"backend"` // "whisperd" or "openai"
	URL     string `yaml:"url"`     // whisperd server base URL
	Model   string `yaml:"model"`   // openai transcription model
}

// DiarizeConfig configures the speaker diarization sidecar.
type DiarizeConfig struct {
	URL string `yaml:"url"`
}

// SummarizeConfig configures the narrative summarization service.
type SummarizeConfig struct {
	URL       string `yaml:"url"`
	MinLength int    `yaml:"min_length"` // lower bound on summary length, in tokens
	MaxLength int    `yaml:"max_length"` // upper bound on summary length, in tokens
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "meetscribe")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		OutputDir: filepath.Join(home, "meetscribe"),
		Audio: AudioConfig{
			SampleRate: 16000,
			Channels:   1,
		},
		STT: STTConfig{
			Backend: "whisperd",
			URL:     "http://127.0.0.1:9000",
			Model:   "whisper-1",
		},
		Diarize: DiarizeConfig{
			URL: "http://127.0.0.1:9001",
		},
		Summarize: SummarizeConfig{
			URL:       "http://127.0.0.1:9002",
			MinLength: 100,
			MaxLength: 250,
		},
		LogLevel: "info",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults. Tilde (~) in output_dir is expanded to the user's home directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.OutputDir = expandTilde(cfg.OutputDir)

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}

	if c.Audio.SampleRate == 0 {
		return fmt.Errorf("audio.sample_rate must be > 0")
	}

	if c.Audio.Channels == 0 {
		return fmt.Errorf("audio.channels must be > 0")
	}

	switch c.STT.Backend {
	case "whisperd", "openai":
	default:
		return fmt.Errorf("stt.backend must be \"whisperd\" or \"openai\", got %q", c.STT.Backend)
	}

	if c.STT.Backend == "whisperd" && c.STT.URL == "" {
		return fmt.Errorf("stt.url must not be empty for the whisperd backend")
	}

	if c.Diarize.URL == "" {
		return fmt.Errorf("diarize.url must not be empty")
	}

	if c.Summarize.URL == "" {
		return fmt.Errorf("summarize.url must not be empty")
	}

	if c.Summarize.MinLength <= 0 || c.Summarize.MaxLength < c.Summarize.MinLength {
		return fmt.Errorf("summarize.min_length/max_length must satisfy 0 < min <= max, got %d/%d",
			c.Summarize.MinLength, c.Summarize.MaxLength)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	return nil
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
