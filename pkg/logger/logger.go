// Package logger owns the process-wide zerolog instance for the employee
// API. It is initialised once from the LOG_LEVEL and ENV settings; every
// other package receives the logger by injection and never touches the
// global state directly.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options maps the service's logging configuration onto zerolog.
type Options struct {
	// Level is the minimum level emitted, from LOG_LEVEL. Unrecognised
	// or empty values fall back to info.
	Level string
	// Env selects the output format, from ENV: "development" renders a
	// human-readable console stream, anything else emits JSON lines.
	Env string
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	root        zerolog.Logger
	once        sync.Once
	initialized bool
)

// Init builds the singleton logger. Only the first call has any effect.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if strings.EqualFold(opts.Env, "development") {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		lvl := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		root = zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Str("service", "employee-api").
			Logger()

		initialized = true
	})
	return root
}

// Get returns the singleton logger. Panics if Init has not been called yet.
func Get() zerolog.Logger {
	if !initialized {
		panic("logger: Get() called before Init()")
	}
	return root
}

// Reset tears down the singleton so that the next Init call rebuilds it.
// Intended for use in tests only.
func Reset() {
	once = sync.Once{}
	root = zerolog.Logger{}
	initialized = false
}

// parseLevel maps a LOG_LEVEL string to a zerolog.Level, defaulting to
// info.
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
