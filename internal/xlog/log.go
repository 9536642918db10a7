// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package xlog is the shared structured logger for the compressor, IO and
// CLI layers. The core algorithms themselves never log on a hot per-edge or
// per-bp-position path.
package xlog

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-level logger every non-core-hot-path component logs
// through. Callers may replace it (e.g. the CLI sets the level from -v).
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	With().Timestamp().Logger()

// SetLevel adjusts the global minimum log level.
func SetLevel(level zerolog.Level) {
	Logger = Logger.Level(level)
}
