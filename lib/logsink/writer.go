// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logsink

import (
	"strings"
	"sync/atomic"

	"github.com/bureau-foundation/tp/lib/queue"
)

// Writer forwards each Write to a queue as one line. Writes never fail:
// once the consumer is gone the lines are counted and discarded.
type Writer struct {
	lines   *queue.Sender[string]
	dropped atomic.Uint64
}

// NewWriter returns a Writer sending into lines.
func NewWriter(lines *queue.Sender[string]) *Writer {
	return &Writer{lines: lines}
}

// Write sends buffer, minus its trailing newline, as a single line.
func (writer *Writer) Write(buffer []byte) (int, error) {
	line := strings.TrimRight(string(buffer), "\r\n")
	if err := writer.lines.Send(line); err != nil {
		writer.dropped.Add(1)
	}
	return len(buffer), nil
}

// Dropped returns how many lines were discarded because the consumer
// had closed its end.
func (writer *Writer) Dropped() uint64 {
	return writer.dropped.Load()
}
