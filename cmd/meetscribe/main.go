package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"meetscribe/internal/cli"
	"meetscribe/internal/config"
	"meetscribe/internal/logger"
)

func main() {
	_ = godotenv.Load() // loads .env, for API keys

	cfg, err := loadConfig(os.Getenv("MEETSCRIBE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	deps := &cli.Dependencies{
		Config: cfg,
		Log:    log,
	}

	if err := cli.NewRootCmd(deps).Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		return cfg, nil
	}

	// No config file, use defaults
	return config.Default(), nil
}
