// Package config reads the daemon's litetable.conf.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	configFileName = "litetable.conf"
)

// Backend names accepted by the backend key.
const (
	BackendMemory = "memory"
	BackendPebble = "pebble"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

type Config struct {
	ServerAddress string
	ServerPort    int
	MetricsPort   int
	// CDCPort serves the change feed. 0 disables it.
	CDCPort int

	Backend string
	// DataDir holds the WAL and the on-disk backends. Defaults to ~/.litetable.
	DataDir    string
	ShardCount int
	Debug      bool
}

func defaults() *Config {
	return &Config{
		ServerAddress: "127.0.0.1",
		ServerPort:    9443,
		MetricsPort:   9090,
		Backend:       BackendMemory,
		ShardCount:    4,
	}
}

func (c *Config) validate() error {
	var errGrp []error
	switch c.Backend {
	case BackendMemory, BackendPebble, BackendBadger, BackendSQLite:
	default:
		errGrp = append(errGrp, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		errGrp = append(errGrp, errors.New("server_port must be between 1 and 65535"))
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		errGrp = append(errGrp, errors.New("metrics_port must be between 0 and 65535"))
	}
	if c.CDCPort < 0 || c.CDCPort > 65535 {
		errGrp = append(errGrp, errors.New("cdc_port must be between 0 and 65535"))
	}
	if c.ServerPort == c.MetricsPort || c.ServerPort == c.CDCPort {
		errGrp = append(errGrp, errors.New("server_port must differ from metrics_port and cdc_port"))
	}
	if c.CDCPort != 0 && c.CDCPort == c.MetricsPort {
		errGrp = append(errGrp, errors.New("cdc_port and metrics_port must differ"))
	}
	return errors.Join(errGrp...)
}

// NewConfig reads litetable.conf from the LiteTable directory.
func NewConfig() (*Config, error) {
	liteTableDir, err := litetable.GetLitetableDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get LiteTable directory: %w", err)
	}

	configPath := filepath.Join(liteTableDir, configFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("LiteTable is not installed or configuration file not found")
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = liteTableDir
	}
	return cfg, nil
}

// Load parses a key=value config file. Unknown keys are ignored; missing keys keep their
// defaults. A metrics_port or cdc_port of 0 disables that listener.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	config := defaults()
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "server_address":
			config.ServerAddress = value
		case "server_port":
			config.ServerPort, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid server port value: %w", err)
			}
		case "metrics_port":
			config.MetricsPort, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid metrics port value: %w", err)
			}
		case "cdc_port":
			config.CDCPort, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid cdc port value: %w", err)
			}
		case "backend":
			config.Backend = strings.ToLower(value)
		case "data_dir":
			config.DataDir = value
		case "shard_count":
			config.ShardCount, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid shard count value: %w", err)
			}
		case "debug":
			config.Debug = value == "true"
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}
