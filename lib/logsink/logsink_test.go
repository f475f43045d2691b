// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logsink

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/bureau-foundation/tp/lib/queue"
)

func TestLoggerEmitsOneLinePerRecord(t *testing.T) {
	sender, receiver := queue.New[string]()
	logger := NewLogger(NewWriter(sender), Options{})

	logger.Info("listener started", "addr", "0.0.0.0:3000")
	logger.Warn("clipboard unavailable")
	logger.Debug("filtered out")

	lines := receiver.Drain(0)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], `msg="listener started"`) || !strings.Contains(lines[0], "addr=0.0.0.0:3000") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "level=WARN") {
		t.Errorf("second line = %q, want WARN level", lines[1])
	}
	for _, line := range lines {
		if strings.HasSuffix(line, "\n") {
			t.Errorf("line %q kept its trailing newline", line)
		}
	}
}

func TestWriterDiscardsAfterReceiverClosed(t *testing.T) {
	sender, receiver := queue.New[string]()
	writer := NewWriter(sender)
	receiver.Close()

	count, err := writer.Write([]byte("after close\n"))
	if err != nil {
		t.Fatalf("Write returned error %v, want nil", err)
	}
	if count != len("after close\n") {
		t.Fatalf("Write count = %d, want %d", count, len("after close\n"))
	}
	if writer.Dropped() != 1 {
		t.Fatalf("Dropped() = %d, want 1", writer.Dropped())
	}
}

func TestFileReceivesJSONAtDebug(t *testing.T) {
	sender, receiver := queue.New[string]()
	var file bytes.Buffer
	logger := NewLogger(NewWriter(sender), Options{Level: slog.LevelInfo, File: &file})

	logger.Debug("debug only", "detail", 7)
	logger.With("component", "bridge").Info("visible")

	if lines := receiver.Drain(0); len(lines) != 1 {
		t.Fatalf("queue got %d lines, want 1", len(lines))
	}

	records := strings.Split(strings.TrimSpace(file.String()), "\n")
	if len(records) != 2 {
		t.Fatalf("file got %d records, want 2: %q", len(records), file.String())
	}
	var last map[string]any
	if err := json.Unmarshal([]byte(records[1]), &last); err != nil {
		t.Fatalf("file record is not JSON: %v", err)
	}
	if last["component"] != "bridge" || last["msg"] != "visible" {
		t.Fatalf("file record = %v", last)
	}
}
