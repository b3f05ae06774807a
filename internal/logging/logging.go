// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the charmbracelet loggers used across bindshift and
// carries them through context.Context.
package logging

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to w at level, with "HH:MM:SS.ms"
// timestamps.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ParseLevel maps a config value to a level. Unknown or empty values map
// to info.
func ParseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Progress logs the elapsed time of an operation when it completes.
// Not safe for concurrent use.
type Progress struct {
	logger *log.Logger
	start  time.Time
}

// NewProgress starts timing an operation.
func NewProgress(l *log.Logger) *Progress {
	return &Progress{logger: l, start: time.Now()}
}

// Elapsed returns the time since the progress was created.
func (p *Progress) Elapsed() time.Duration {
	return time.Since(p.start)
}

// Done logs msg with the elapsed time rounded to the millisecond, e.g.
// "Shifted 12 of 40 pages (31ms)".
func (p *Progress) Done(msg string, keyvals ...interface{}) {
	p.logger.Info(msg+" ("+p.Elapsed().Round(time.Millisecond).String()+")", keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or log.Default().
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
