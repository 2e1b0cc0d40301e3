// Package logger holds the module-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// EnvVar names the environment variable that enables logging at startup. Its
// value is a logrus level name ("debug", "info", ...).
const EnvVar = "POOLALLOC_LOG"

// L is the global logger instance. It discards all output unless EnvVar is set
// or Init is called.
var L = newLogger(io.Discard, logrus.InfoLevel)

// Options configures the logger.
type Options struct {
	Enabled bool      // If false, all logging is discarded
	Out     io.Writer // Destination. Default: os.Stderr
	Level   string    // logrus level name ("debug", "panic", ...). Default: "info"
}

func init() {
	if v := os.Getenv(EnvVar); v != "" {
		level, err := logrus.ParseLevel(strings.TrimSpace(v))
		if err != nil {
			level = logrus.DebugLevel
		}
		L = newLogger(os.Stderr, level)
	}
}

// Init replaces the global logger. Call from main() before any log calls.
// An unknown level name is an error and leaves the logger unchanged.
func Init(opts Options) error {
	if !opts.Enabled {
		L = newLogger(io.Discard, logrus.InfoLevel)
		return nil
	}

	level := logrus.InfoLevel
	if name := strings.TrimSpace(opts.Level); name != "" {
		parsed, err := logrus.ParseLevel(name)
		if err != nil {
			return errors.Wrap(err, "logger")
		}
		level = parsed
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	L = newLogger(out, level)
	return nil
}

// Enabled reports whether messages at level would be written. Hot paths check
// it before building fields.
func Enabled(level logrus.Level) bool {
	return L.Out != io.Discard && L.IsLevelEnabled(level)
}

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	return &logrus.Logger{
		Out:   out,
		Level: level,
		Hooks: make(logrus.LevelHooks),
		Formatter: &prefixed.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
			ForceFormatting: true,
		},
	}
}
