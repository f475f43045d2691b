// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/tp/lib/clipboard"
	"github.com/bureau-foundation/tp/lib/clock"
	"github.com/bureau-foundation/tp/lib/queue"
	"github.com/bureau-foundation/tp/lib/ring"
	"github.com/bureau-foundation/tp/lib/slot"
)

const (
	// HistoryCapacity is the number of received messages kept.
	HistoryCapacity = 50

	// LogCapacity is the number of log lines kept.
	LogCapacity = 1000

	// DefaultPollInterval is the cadence of Run and of the UI tick.
	DefaultPollInterval = 100 * time.Millisecond
)

// Config wires a Consumer to its queues and slot.
type Config struct {
	// Inbound carries text received by the listener. Required.
	Inbound *queue.Receiver[string]

	// Logs carries formatted log lines. Optional.
	Logs *queue.Receiver[string]

	// Outbound is the slot served on GET /content. Required.
	Outbound *slot.Slot

	// Clipboard mirrors received text. Nil disables clipboard
	// integration entirely.
	Clipboard clipboard.Clipboard

	// Logger receives the consumer's own events. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Batch is what one Poll drained, in arrival order.
type Batch struct {
	Inbound []string
	Logs    []string
}

// Empty reports whether the poll found nothing.
func (batch Batch) Empty() bool {
	return len(batch.Inbound) == 0 && len(batch.Logs) == 0
}

// Consumer holds the display state fed by the bridge. Not safe for
// concurrent use.
type Consumer struct {
	inbound   *queue.Receiver[string]
	logs      *queue.Receiver[string]
	outbound  *slot.Slot
	clipboard clipboard.Clipboard
	logger    *slog.Logger

	history   *ring.Buffer[string]
	logLines  *ring.Buffer[string]
	latest    string
	hasLatest bool

	clipboardFailures uint64
}

// New creates a Consumer. Panics if Inbound or Outbound is nil, which
// is a wiring bug rather than a runtime condition.
func New(config Config) *Consumer {
	if config.Inbound == nil {
		panic("consumer: Inbound is required")
	}
	if config.Outbound == nil {
		panic("consumer: Outbound is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		inbound:   config.Inbound,
		logs:      config.Logs,
		outbound:  config.Outbound,
		clipboard: config.Clipboard,
		logger:    logger,
		history:   ring.New[string](HistoryCapacity),
		logLines:  ring.New[string](LogCapacity),
	}
}

// Poll drains everything currently queued on both receivers and
// returns it. Never blocks.
func (c *Consumer) Poll() Batch {
	var batch Batch

	batch.Inbound = c.inbound.Drain(0)
	for _, text := range batch.Inbound {
		c.history.Push(text)
		c.latest = text
		c.hasLatest = true
		c.mirror(text)
	}

	if c.logs != nil {
		batch.Logs = c.logs.Drain(0)
		for _, line := range batch.Logs {
			c.logLines.Push(line)
		}
	}
	return batch
}

func (c *Consumer) mirror(text string) {
	if c.clipboard == nil {
		return
	}
	if err := c.clipboard.WriteText(text); err != nil {
		c.clipboardFailures++
		c.logger.Warn("could not copy received content to clipboard",
			"error", err,
			"length", len(text),
		)
		return
	}
	c.logger.Debug("copied received content to clipboard", "length", len(text))
}

// PushOutbound replaces the outbound content served to devices.
func (c *Consumer) PushOutbound(text string) {
	c.outbound.Write(text)
	c.logger.Info("outbound content updated", "length", len(text))
}

// Outbound returns the current outbound content.
func (c *Consumer) Outbound() string {
	return c.outbound.Read()
}

// OutboundVersion counts outbound publishes, including the ones made
// by other writers of the slot.
func (c *Consumer) OutboundVersion() uint64 {
	return c.outbound.Version()
}

// PasteForOutbound reads the clipboard, for loading it into the
// outbound editor. It does not write the slot.
func (c *Consumer) PasteForOutbound() (string, error) {
	if c.clipboard == nil {
		return "", clipboard.ErrUnavailable
	}
	text, err := c.clipboard.ReadText()
	if err != nil {
		c.logger.Warn("could not read clipboard", "error", err)
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return text, nil
}

// CopyToClipboard copies text on request, e.g. a history entry.
func (c *Consumer) CopyToClipboard(text string) error {
	if c.clipboard == nil {
		return clipboard.ErrUnavailable
	}
	if err := c.clipboard.WriteText(text); err != nil {
		c.clipboardFailures++
		c.logger.Warn("could not copy to clipboard", "error", err)
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	c.logger.Info("copied to clipboard", "length", len(text))
	return nil
}

// History returns received messages, newest first.
func (c *Consumer) History() []string {
	return c.history.Newest()
}

// HistoryAt returns the history entry at index (0 is the newest).
func (c *Consumer) HistoryAt(index int) (string, bool) {
	return c.history.At(index)
}

// Received returns the number of messages ever received, including
// those evicted from history.
func (c *Consumer) Received() uint64 {
	return c.history.Total()
}

// Logs returns retained log lines in emission order.
func (c *Consumer) Logs() []string {
	return c.logLines.Oldest()
}

// Latest returns the most recently received text.
func (c *Consumer) Latest() (string, bool) {
	return c.latest, c.hasLatest
}

// ClipboardFailures counts failed clipboard writes.
func (c *Consumer) ClipboardFailures() uint64 {
	return c.clipboardFailures
}

// Run polls on every tick of clk until ctx is done, calling onBatch
// for each non-empty batch. A final poll after cancellation flushes
// anything queued during shutdown. onBatch may be nil.
func (c *Consumer) Run(ctx context.Context, clk clock.Clock, interval time.Duration, onBatch func(Batch)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := clk.NewTicker(interval)
	defer ticker.Stop()

	deliver := func() {
		batch := c.Poll()
		if onBatch != nil && !batch.Empty() {
			onBatch(batch)
		}
	}

	for {
		select {
		case <-ctx.Done():
			deliver()
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			deliver()
		}
	}
}
