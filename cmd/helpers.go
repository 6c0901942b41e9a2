package cmd

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/config"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/contentapi"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/logging"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/store"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `kaftar init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// setupLogging installs the global logger for cfg. --verbose forces debug.
func setupLogging(cfg *config.Config) zerolog.Logger {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logging.Init(logging.Config{
		Level:       level,
		Environment: string(cfg.Environment),
		Service:     "kaftar",
		Version:     Version,
	})
	return logging.Get()
}

// newStore builds the content store for cfg's API.
func newStore(cfg *config.Config) (*store.Store, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	client := contentapi.New(cfg.APIBaseURL, contentapi.WithTimeout(timeout))
	return store.New(client, logging.Component("store")), nil
}
