// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package queue provides the unbounded multi-producer, single-consumer
// channel that carries inbound text and log lines from the listener to
// the consumer.
//
// Go channels are bounded: a producer blocks (or must drop) when the
// buffer is full, and the HTTP handler must never block on a slow
// consumer. [Sender.Send] therefore appends to a mutex-guarded slice and
// returns immediately. The consumer drains with [Receiver.TryReceive] or
// [Receiver.Drain], neither of which blocks.
//
// Lifecycle mirrors a disconnecting channel pair. Closing the
// [Receiver] makes every later Send fail with [ErrClosed]. Closing a
// [Sender] handle makes later Sends on that handle fail the same way;
// closing the last handle (see [Sender.Clone]) lets the receiver report
// [ErrDisconnected] once the backlog is empty.
package queue
