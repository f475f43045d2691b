// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bridge is the LAN listener that moves text between a phone's
// browser and the PC.
//
// [Bridge] serves three routes over plaintext HTTP or, when TLS is set,
// HTTPS with the self-signed certificate from lib/certgen:
//
//	GET  /         the static send/receive page
//	POST /send     form field "content" -> inbound queue (alias /submit)
//	GET  /content  the current outbound slot value as text/plain
//
// Inbound text is handed to a [queue.Sender] and never blocks on the
// consumer. If the consumer has closed its end, the listener logs that
// once, stops forwarding, and keeps answering 200: "accepted" means the
// server received the text, not that a live consumer saw it.
//
// Start binds synchronously. A bind failure is logged through the
// bridge's logger before Start returns a [*BindError], so a consumer
// whose log sink is the log queue can display the cause.
package bridge
