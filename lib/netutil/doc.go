// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides the network helpers the listener's startup
// path needs: discovering the LAN address the phone should dial,
// formatting the join URL shown as text and QR code, and turning bind
// failures into errors a user can act on.
package netutil
