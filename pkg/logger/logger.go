// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the root logger is built.
type Options struct {
	// Level is the minimum level to emit: trace, debug, info, warn or error.
	// Unrecognised or empty values fall back to info.
	Level string
	// Pretty switches to the coloured console writer for local development.
	// Leave false to emit JSON lines.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	root        zerolog.Logger
	once        sync.Once
	initialized bool
)

// Init builds the root logger. Repeated calls return the logger built by the
// first one.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		lvl := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		root = zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Str("service", "job-board").
			Logger()

		initialized = true
	})
	return root
}

// Get returns the root logger. Panics when Init has not run yet.
func Get() zerolog.Logger {
	if !initialized {
		panic("logger: Get() called before Init()")
	}
	return root
}

// Component returns a child logger tagged with the subsystem name.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset tears the root logger down so the next Init rebuilds it. Test use
// only.
func Reset() {
	once = sync.Once{}
	root = zerolog.Logger{}
	initialized = false
}

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
