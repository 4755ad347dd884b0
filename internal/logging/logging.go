// Package logging builds the application logger. The same logger is handed to
// echo so request logs and application logs share one output and level.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

const header = `{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}","file":"${short_file}","line":"${line}"}`

// ParseLevel converts a level name to a gommon log level.
func ParseLevel(name string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return log.DEBUG, nil
	case "", "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	default:
		return log.INFO, fmt.Errorf("unknown log level %q", name)
	}
}

// New creates a logger writing JSON-headed lines to w.
func New(prefix, level string, w io.Writer) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := log.New(prefix)
	logger.SetHeader(header)
	logger.SetLevel(lvl)
	logger.SetOutput(w)
	return logger, nil
}

// Discard returns a logger that drops everything. Useful for testing.
func Discard() *log.Logger {
	logger := log.New("discard")
	logger.SetOutput(io.Discard)
	logger.SetLevel(log.OFF)
	return logger
}
