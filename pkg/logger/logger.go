// Package logger configures the process-wide zerolog logger.
//
// Call Init once at startup with the service name, then derive per-component
// loggers with For. Levels follow zerolog's ordering:
//
//	TRACE (-1) → DEBUG (0) → INFO (1) → WARN (2) → ERROR (3)
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Service is stamped on every log line ("server", "panel").
	Service string
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Defaults to "info" when empty or unrecognised.
	Level string
	// Pretty enables human-friendly console output instead of JSON.
	Pretty bool
	// Output is the writer logs are sent to. Defaults to os.Stdout.
	Output io.Writer
}

var (
	mu   sync.Mutex
	root zerolog.Logger
	set  bool
)

// Init builds the root logger and installs it as the process default.
// Later calls replace the root, which only tests should do.
func Init(opts Options) zerolog.Logger {
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

	l := zerolog.New(out).Level(lvl).With().Timestamp()
	if opts.Service != "" {
		l = l.Str("service", opts.Service)
	}

	mu.Lock()
	defer mu.Unlock()
	root = l.Logger()
	set = true
	return root
}

// For returns the root logger tagged with a component name. Before Init it
// falls back to a plain stdout logger so early code paths still log.
func For(component string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !set {
		root = zerolog.New(os.Stdout).With().Timestamp().Logger()
		set = true
	}
	return root.With().Str("component", component).Logger()
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
