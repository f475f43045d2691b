// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bridgeui is the terminal front end of the transfer bridge: a
// bubbletea model that polls a [consumer.Consumer] on a fixed tick and
// renders the join URL (with a QR code a phone camera can scan), the
// latest received text, an outbound editor, the received history with
// fuzzy filtering, and a toggleable log panel.
//
// All consumer access happens inside Update, so the consumer stays
// single-threaded even though bubbletea runs commands concurrently.
package bridgeui
