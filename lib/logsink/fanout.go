// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logsink

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// Fanout is a slog.Handler that sends each record to every enabled
// sub-handler. A record is enabled if any sub-handler wants it.
type Fanout []slog.Handler

func (handlers Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every sub-handler and joins their
// errors, so one failing sink does not starve the others.
func (handlers Fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (handlers Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(Fanout, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers Fanout) WithGroup(name string) slog.Handler {
	derived := make(Fanout, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}

// Options configures NewLogger.
type Options struct {
	// Level is the minimum level written to the line queue.
	Level slog.Leveler

	// File, if non-nil, receives every record at Debug and above as
	// JSON, independent of Level.
	File io.Writer
}

// NewLogger builds the process logger: a text handler over writer,
// plus a JSON handler over options.File when set. Time is kept in
// the line so the log panel shows when each event happened.
func NewLogger(writer *Writer, options Options) *slog.Logger {
	level := options.Level
	if level == nil {
		level = slog.LevelInfo
	}
	var handler slog.Handler = slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})
	if options.File != nil {
		handler = Fanout{
			handler,
			slog.NewJSONHandler(options.File, &slog.HandlerOptions{Level: slog.LevelDebug}),
		}
	}
	return slog.New(handler)
}
