// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package logsink routes slog output into the consumer's log queue.
//
// [Writer] is an io.Writer that forwards each write as one log line.
// slog's built-in handlers emit exactly one Write per record, so a
// slog.TextHandler over a Writer turns every record into one LogLine
// that the consumer drains alongside inbound text. This is what lets
// the render surface show startup failures (certificate, bind) without
// a separate console.
//
// [Fanout] duplicates records to several handlers, used when
// --log-output also asks for a JSON copy on disk.
package logsink
