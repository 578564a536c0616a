// Package config loads codec decode limits and log settings from TOML.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/xiaojian-hong/yomo-codec/internal/logging"
	"github.com/xiaojian-hong/yomo-codec/protocol/tlv"
)

// Config is the resolved codec configuration.
type Config struct {
	MaxPayloadBytes uint64
	MaxRecords      int
	LogLevel        zerolog.Level
	LogTimestamp    bool
	LogNoColor      bool
}

// codec.toml key mapping.
type fileConfig struct {
	MaxPayloadBytes int64  `toml:"max_payload_bytes"`
	MaxRecords      int    `toml:"max_records"`
	LogLevel        string `toml:"log_level"`
	LogTimestamp    bool   `toml:"log_timestamp"`
	LogNoColor      bool   `toml:"log_nocolor"`
}

func Default() Config {
	limits := tlv.DefaultLimits()
	logs := logging.DefaultSettings(logging.ProfileRuntime)
	return Config{
		MaxPayloadBytes: limits.MaxPayloadBytes,
		MaxRecords:      limits.MaxRecords,
		LogLevel:        logs.Level,
		LogTimestamp:    logs.Timestamp,
		LogNoColor:      logs.NoColor,
	}
}

// Load reads path and applies every defined key on top of Default().
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load codec config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("load codec config: unknown keys: %s", strings.Join(keys, ", "))
	}

	if meta.IsDefined("max_payload_bytes") {
		if raw.MaxPayloadBytes < 0 {
			return Config{}, fmt.Errorf("max_payload_bytes must not be negative: %d", raw.MaxPayloadBytes)
		}
		cfg.MaxPayloadBytes = uint64(raw.MaxPayloadBytes)
	}

	if meta.IsDefined("max_records") {
		if raw.MaxRecords < 0 {
			return Config{}, fmt.Errorf("max_records must not be negative: %d", raw.MaxRecords)
		}
		cfg.MaxRecords = raw.MaxRecords
	}

	if meta.IsDefined("log_level") {
		lvl, ok := logging.ParseLevel(raw.LogLevel)
		if !ok {
			return Config{}, fmt.Errorf("parse log_level: unknown level %q", raw.LogLevel)
		}
		cfg.LogLevel = lvl
	}

	if meta.IsDefined("log_timestamp") {
		cfg.LogTimestamp = raw.LogTimestamp
	}

	if meta.IsDefined("log_nocolor") {
		cfg.LogNoColor = raw.LogNoColor
	}

	return cfg, nil
}

func (c Config) Limits() tlv.Limits {
	return tlv.Limits{
		MaxPayloadBytes: c.MaxPayloadBytes,
		MaxRecords:      c.MaxRecords,
	}
}

// ApplyLogging installs the configured level and format as the codec logger.
func (c Config) ApplyLogging() {
	logging.Apply(c.logSettings())
}

func (c Config) logSettings() logging.Settings {
	s := logging.DefaultSettings(logging.ProfileRuntime)
	s.Level = c.LogLevel
	s.Timestamp = c.LogTimestamp
	s.NoColor = c.LogNoColor
	return s
}
