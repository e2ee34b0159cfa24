package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yumosx/recycler/internal/env"
	"github.com/yumosx/recycler/internal/log"
)

// LoadReader config via io.Reader.
func LoadReader(fd io.Reader) (*Config, error) {
	data, err := io.ReadAll(fd)
	if err != nil {
		return nil, err
	}

	var config Config
	err = json.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	return &config, err
}

// Load loads the configuration from the default paths and sets up logging.
func Load(workingDir string, debug bool) (*Config, error) {
	cfg, err := load(workingDir, debug, env.New())
	if err != nil {
		return nil, err
	}

	log.Setup(
		filepath.Join(cfg.Options.DataDirectory, "logs", fmt.Sprintf("%s.log", appName)),
		cfg.Options.Debug,
	)
	return cfg, nil
}

func load(workingDir string, debug bool, e env.Env) (*Config, error) {
	configPaths := []string{
		GlobalConfig(e),
		GlobalConfigData(e),
		filepath.Join(workingDir, fmt.Sprintf("%s.json", appName)),
		filepath.Join(workingDir, fmt.Sprintf(".%s.json", appName)),
	}
	data, loaded, err := mergeFiles(configPaths)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode config from %v: %w", loaded, err)
	}

	cfg.sources = loaded
	cfg.dataConfigDir = GlobalConfigData(e)
	cfg.setDefaults(workingDir)

	if debug {
		cfg.Options.Debug = true
	}
	if err := cfg.resolvePaths(e.Get); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// GlobalConfig returns the path to the user's main config file.
func GlobalConfig(e env.Env) string {
	return filepath.Join(env.ConfigHome(e), appName, fmt.Sprintf("%s.json", appName))
}

// GlobalConfigData returns the path to the config file the app writes to.
// It is used when the app overrides configurations instead of updating the
// global config.
func GlobalConfigData(e env.Env) string {
	return filepath.Join(env.DataHome(e), appName, fmt.Sprintf("%s.json", appName))
}
