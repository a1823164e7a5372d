// Package logging sets up the process-level structured logger of the harness.
//
// Per-test output does not go through here: each test has its own debug logger in the framework
// package. This logger records what happens around the tests (configuration, driver sessions,
// run summary) on the console and, optionally, in a rotating JSON log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SensitiveKeys are the attribute keys that are never written out.
var SensitiveKeys = []string{"api_key", "apikey", "token", "secret", "password"}

// Options defines parameters for logger creation.
type Options struct {
	ConsoleLevel string // default: info
	FileLevel    string // default: debug
	File         string
	NoColor      bool
	RunID        string

	// Console defaults to os.Stderr.
	Console io.Writer
}

var closers sync.Map

// New creates a configured slog.Logger.
func New(o Options) *slog.Logger {
	console := o.Console
	if console == nil {
		console = os.Stderr
	}
	consoleLevel := o.ConsoleLevel
	if consoleLevel == "" {
		consoleLevel = "info"
	}
	fileLevel := o.FileLevel
	if fileLevel == "" {
		fileLevel = "debug"
	}

	var handlers []slog.Handler
	var consoleHandler slog.Handler = tint.NewHandler(console, &tint.Options{
		Level:      LevelFromString(consoleLevel),
		TimeFormat: time.TimeOnly,
		NoColor:    o.NoColor,
	})
	handlers = append(handlers, NewRedactingHandler(consoleHandler, SensitiveKeys))

	var closer func() error
	if o.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		closer = fileWriter.Close
		var fileHandler slog.Handler = slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{Level: LevelFromString(fileLevel)})
		handlers = append(handlers, NewRedactingHandler(fileHandler, SensitiveKeys))
	}

	var h slog.Handler
	if len(handlers) == 1 {
		h = handlers[0]
	} else {
		h = NewMultiHandler(handlers...)
	}

	l := slog.New(h)
	if o.RunID != "" {
		l = l.With(slog.String("run_id", o.RunID))
	}
	if closer != nil {
		closers.Store(l, closer)
	}
	return l
}

// Close releases the log file of a logger created by New, if it has one.
func Close(logger *slog.Logger) error {
	if c, ok := closers.Load(logger); ok {
		closers.Delete(logger)
		return c.(func() error)()
	}
	return nil
}

// LevelFromString parses a level name, defaulting to info.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
