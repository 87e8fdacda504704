// Copyright 2025 ByteDance Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log is the process-wide printf-style logger. Output always goes to
// a writer other than stdout by default, so stdio transports stay clean.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/lmittmann/tint"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
)

var (
	level  = new(slog.LevelVar)
	logger atomic.Pointer[slog.Logger]
)

func init() {
	level.Set(slog.LevelInfo)
	SetOutput(os.Stderr)
}

func newLogger(w io.Writer, noColor bool) *slog.Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  false,
		TimeFormat: "2006-01-02 15:04:05.000",
		NoColor:    noColor,
	})
	return slog.New(handler)
}

// SetOutput redirects all subsequent log lines to w. Color is only used when
// w is a terminal-backed *os.File.
func SetOutput(w io.Writer) {
	noColor := true
	if f, ok := w.(*os.File); ok {
		if fi, err := f.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			noColor = false
		}
	}
	logger.Store(newLogger(w, noColor))
}

func SetLogLevel(l Level) {
	level.Set(toSlog(l))
}

func Enabled(l Level) bool {
	return logger.Load().Enabled(context.Background(), toSlog(l))
}

func Debug(format string, args ...interface{}) {
	logf(slog.LevelDebug, format, args...)
}

func Info(format string, args ...interface{}) {
	logf(slog.LevelInfo, format, args...)
}

func Error(format string, args ...interface{}) {
	logf(slog.LevelError, format, args...)
}

func logf(lvl slog.Level, format string, args ...interface{}) {
	l := logger.Load()
	if !l.Enabled(context.Background(), lvl) {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	l.Log(context.Background(), lvl, msg)
}

func toSlog(l Level) slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
