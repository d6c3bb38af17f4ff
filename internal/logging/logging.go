package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"

	"pochy-chat/internal/config"
)

// New builds the process logger. format "json" writes one JSON object per
// line; anything else gets the human-readable console writer.
func New(cfg config.LogConfig) *log.Logger {
	return newWithOutput(cfg, os.Stderr)
}

func newWithOutput(cfg config.LogConfig, out io.Writer) *log.Logger {
	logger := &log.Logger{
		Level:      log.ParseLevel(strings.ToLower(cfg.Level)),
		TimeFormat: "15:04:05",
	}
	if strings.EqualFold(cfg.Format, "json") {
		logger.TimeFormat = ""
		logger.Writer = &log.IOWriter{Writer: out}
	} else {
		logger.Writer = &log.ConsoleWriter{Writer: out, ColorOutput: false, QuoteString: true}
	}
	return logger
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	return &log.Logger{Level: log.PanicLevel, Writer: &log.IOWriter{Writer: io.Discard}}
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
