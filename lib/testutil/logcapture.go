// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
)

// LogCapture collects text-formatted log lines. Safe for concurrent
// use by the code under test.
type LogCapture struct {
	mutex sync.Mutex
	lines []string
}

// NewLogCapture returns a Debug-level logger writing into a capture.
func NewLogCapture() (*slog.Logger, *LogCapture) {
	capture := &LogCapture{}
	return slog.New(slog.NewTextHandler(capture, &slog.HandlerOptions{Level: slog.LevelDebug})), capture
}

// Write records one line per call, matching slog's one-write-per-record.
func (capture *LogCapture) Write(data []byte) (int, error) {
	capture.mutex.Lock()
	defer capture.mutex.Unlock()
	capture.lines = append(capture.lines, string(bytes.TrimRight(data, "\n")))
	return len(data), nil
}

// Lines returns a copy of every captured line.
func (capture *LogCapture) Lines() []string {
	capture.mutex.Lock()
	defer capture.mutex.Unlock()
	return append([]string(nil), capture.lines...)
}

// Count returns how many captured lines contain substring.
func (capture *LogCapture) Count(substring string) int {
	count := 0
	for _, line := range capture.Lines() {
		if strings.Contains(line, substring) {
			count++
		}
	}
	return count
}
