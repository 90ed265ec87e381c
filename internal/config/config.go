package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type RuntimeConfig struct {
	DBPath          string
	Timezone        string
	SchedulerBuffer int
	LogLevel        string
	LogEncoding     string
	LogFile         string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:          "duedate.db",
		Timezone:        "Local",
		SchedulerBuffer: 64,
		LogLevel:        "info",
		LogEncoding:     "console",
		LogFile:         "duedate.log",
	}
}

// Load reads TASKD_* environment variables and, when path is non-empty, a
// config file. Environment values win over the file.
func Load(path string) (RuntimeConfig, error) {
	def := DefaultRuntimeConfig()

	v := viper.New()
	v.SetEnvPrefix("TASKD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("timezone", def.Timezone)
	v.SetDefault("scheduler_buffer", def.SchedulerBuffer)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_encoding", def.LogEncoding)
	v.SetDefault("log_file", def.LogFile)

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return RuntimeConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := RuntimeConfig{
		DBPath:          strings.TrimSpace(v.GetString("db_path")),
		Timezone:        strings.TrimSpace(v.GetString("timezone")),
		SchedulerBuffer: v.GetInt("scheduler_buffer"),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogEncoding:     strings.ToLower(strings.TrimSpace(v.GetString("log_encoding"))),
		LogFile:         strings.TrimSpace(v.GetString("log_file")),
	}
	if cfg.SchedulerBuffer <= 0 {
		cfg.SchedulerBuffer = def.SchedulerBuffer
	}
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

func (c RuntimeConfig) Validate() error {
	if c.DBPath == "" {
		return errors.New("config: db path is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.LogEncoding {
	case "console", "json":
	default:
		return fmt.Errorf("config: unsupported log encoding %q", c.LogEncoding)
	}
	return nil
}

// Location resolves the timezone due dates are computed in. Empty and "Local"
// mean the process's local zone.
func (c RuntimeConfig) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
