// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the device-trust client, its storage layer
// and the reference backend.
//
// *Logger embeds zerolog.Logger, so the usual Debug/Info/Err chains are
// called on it directly. Components receive a *Logger at construction;
// request handlers take theirs from the request context.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFileEnv overrides the file the client logs into.
const LogFileEnv = "DEVICE_TRUST_LOG_FILE"

const clientLogName = "device-trust.log"

type Logger struct {
	zerolog.Logger
}

// NewLogger returns a JSON logger on stdout tagged with role. Every entry
// carries a timestamp and the calling function under "func".
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

// NewClientLogger is like [NewLogger] but writes into a file so that output
// does not corrupt the terminal UI: $DEVICE_TRUST_LOG_FILE when set,
// device-trust.log next to the executable otherwise. Falls back to stdout
// when the file cannot be opened.
func NewClientLogger(role string) *Logger {
	var out io.Writer = os.Stdout
	if f, err := os.OpenFile(clientLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
		out = f
	}
	return newLogger(out, role)
}

func clientLogPath() string {
	if p := os.Getenv(LogFileEnv); p != "" {
		return p
	}
	execPath, _ := os.Executable()
	return filepath.Join(filepath.Dir(execPath), clientLogName)
}

func newLogger(w io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// Nop discards everything; for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can be enriched without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithTab tags entries with the tab (origin) so that the output of several
// tabs sharing one log file can be told apart.
func (l *Logger) WithTab(tabID string) *Logger {
	return &Logger{l.With().Str("tab", tabID).Logger()}
}

// FromRequest returns the logger the logging middleware attached to r.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx, or zerolog's default one.
// It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
