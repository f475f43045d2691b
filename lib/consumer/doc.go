// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package consumer is the receiving end of the transfer bridge. A
// [Consumer] drains the inbound-text and log-line queues without
// blocking, keeps bounded histories of both, mirrors received text to
// the clipboard, and writes the outbound slot the listener serves.
//
// The consumer is driven by one goroutine: the terminal UI's update
// loop calls [Consumer.Poll] on every tick, and headless mode uses
// [Consumer.Run]. It never touches the network.
package consumer
