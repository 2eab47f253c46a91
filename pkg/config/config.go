// Package config loads toolkit configuration from YAML or JSON files.
package config

import (
	"fmt"
	"strings"

	"github.com/whichxjy/acht/pkg/asynclog"
)

// PoolConfig configures the worker pool.
type PoolConfig struct {
	// Workers is the worker goroutine count. Zero means GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers"`
	// MaxTasks bounds the task queue. Zero means the pool default.
	MaxTasks int `yaml:"max_tasks" json:"max_tasks"`
}

// LogConfig configures the async logger.
type LogConfig struct {
	// Level is the threshold name: FATAL, ERROR, WARN, INFO or DEBUG.
	Level string `yaml:"level" json:"level"`
	// File is the append-only log file path.
	File string `yaml:"file" json:"file"`
	// QueueSize bounds the record queue. Zero means the logger default.
	QueueSize int `yaml:"queue_size" json:"queue_size"`
}

// Config is the root configuration.
type Config struct {
	Pool PoolConfig `yaml:"pool" json:"pool"`
	Log  LogConfig  `yaml:"log" json:"log"`
}

// Default returns a working configuration: GOMAXPROCS workers, default
// queue bounds, INFO logging to out.log.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: asynclog.LevelInfo.String(),
			File:  asynclog.DefaultFilePath,
		},
	}
}

// Load reads a configuration file, detecting YAML or JSON by extension
// (unknown extensions default to YAML), and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	var err error
	if strings.HasSuffix(path, ".json") {
		err = LoadJSON(path, &cfg)
	} else {
		err = LoadYAML(path, &cfg)
	}
	if err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the toolkit cannot honor.
func (c Config) Validate() error {
	if c.Pool.Workers < 0 {
		return fmt.Errorf("pool.workers must not be negative, got %d", c.Pool.Workers)
	}
	if c.Pool.MaxTasks < 0 {
		return fmt.Errorf("pool.max_tasks must not be negative, got %d", c.Pool.MaxTasks)
	}
	if c.Log.QueueSize < 0 {
		return fmt.Errorf("log.queue_size must not be negative, got %d", c.Log.QueueSize)
	}
	if c.Log.Level != "" {
		if _, err := asynclog.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	return nil
}

// LogLevel returns the parsed threshold, falling back to INFO when unset.
func (c Config) LogLevel() asynclog.Level {
	if c.Log.Level == "" {
		return asynclog.LevelInfo
	}
	level, err := asynclog.ParseLevel(c.Log.Level)
	if err != nil {
		return asynclog.LevelInfo
	}
	return level
}
