// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

// Package logging wraps zerolog behind a process-wide logger.
//
// Init is called once from main with the loaded configuration; before that,
// a sane JSON logger at info level is already in place so packages may log
// during startup. Log chains are always terminated with .Msg() or .Send(),
// and fields are structured rather than formatted into the message:
//
//	logging.Info().Str("component", "api").Int("port", 8080).Msg("listening")
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config selects level, format and destination for the global logger.
type Config struct {
	// Level is one of zerolog's level names (trace through panic, or
	// "disabled"). Unknown or empty values fall back to info.
	Level string

	// Format is "json" (default) or "console" for human-readable output.
	Format string

	// Caller adds file:line of the call site to each entry.
	Caller bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig is JSON at info level on stderr.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Output: os.Stderr}
}

var (
	mu  sync.RWMutex
	log = build(DefaultConfig())
)

// Init replaces the global logger. Call it early in main; calling it again
// later (for example after a config reload) is safe.
func Init(cfg Config) {
	l := build(cfg)
	mu.Lock()
	log = l
	mu.Unlock()
}

func build(cfg Config) zerolog.Logger {
	name := strings.ToLower(cfg.Level)
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stderr
	if cfg.Output != nil {
		out = cfg.Output
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger swaps in a prebuilt logger. Tests use this to capture output.
//
//nolint:gocritic // zerolog.Logger is passed by value on purpose
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	log = l
	mu.Unlock()
}

// With opens a child logger context carrying extra default fields.
func With() zerolog.Context {
	return Logger().With()
}

// Debug starts a debug-level entry on the global logger.
func Debug() *zerolog.Event { l := Logger(); return l.Debug() }

// Info starts an info-level entry on the global logger.
func Info() *zerolog.Event { l := Logger(); return l.Info() }

// Warn starts a warn-level entry on the global logger.
func Warn() *zerolog.Event { l := Logger(); return l.Warn() }

// Error starts an error-level entry on the global logger.
func Error() *zerolog.Event { l := Logger(); return l.Error() }

// Fatal starts a fatal-level entry; the process exits once it is written.
func Fatal() *zerolog.Event { l := Logger(); return l.Fatal() }
