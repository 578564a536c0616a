package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel     = "YOMO_CODEC_LOG_LEVEL"
	EnvLogTimestamp = "YOMO_CODEC_LOG_TIMESTAMP"
	EnvLogNoColor   = "YOMO_CODEC_LOG_NOCOLOR"
	EnvLogBypass    = "YOMO_CODEC_LOG_BYPASS"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Settings controls the process-wide codec logger.
// Bypass skips console formatting and writes raw JSON events.
type Settings struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Bypass    bool
	Output    io.Writer
}

var (
	configureOnce sync.Once

	mu     sync.RWMutex
	logger = zerolog.Nop()
)

func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

func ConfigureTests() {
	Configure(ProfileTest)
}

func Configure(profile Profile) {
	configureOnce.Do(func() {
		cfg := DefaultSettings(profile)
		applyEnvOverrides(&cfg)
		set(cfg)
	})
}

// Apply replaces the logger unconditionally. Later Configure calls become no-ops.
func Apply(s Settings) {
	configureOnce.Do(func() {})
	set(s)
}

// Logger returns the codec logger, configuring the runtime profile on first use.
func Logger() zerolog.Logger {
	ConfigureRuntime()
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func DefaultSettings(profile Profile) Settings {
	switch profile {
	case ProfileTest:
		return Settings{
			Level:     zerolog.DebugLevel,
			Timestamp: false,
			Output:    os.Stdout,
		}
	default:
		return Settings{
			Level:     zerolog.InfoLevel,
			Timestamp: true,
			Output:    os.Stderr,
		}
	}
}

func set(s Settings) {
	l := newLogger(s)
	mu.Lock()
	logger = l
	mu.Unlock()
}

func newLogger(s Settings) zerolog.Logger {
	out := s.Output
	if out == nil {
		out = os.Stderr
	}
	if !s.Bypass {
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    s.NoColor,
			TimeFormat: time.RFC3339,
		}
	}
	ctx := zerolog.New(out).Level(s.Level).With().Str("app", "yomo-codec")
	if s.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}

func applyEnvOverrides(cfg *Settings) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogBypass)); ok {
		cfg.Bypass = v
	}
}

// ParseLevel maps a config or env level name onto a zerolog level.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace", "diagnostics":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none", "inactive":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
