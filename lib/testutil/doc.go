// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive] and [RequireClosed] encapsulate the timeout safety
// valve pattern (select with time.After fallback) so that individual
// tests do not need direct time.After calls. [Eventually] polls a
// condition for things observed through non-blocking APIs, such as the
// consumer's Poll.
//
// [NewLogCapture] returns a slog.Logger whose records are kept in
// memory, for asserting what the listener and consumer logged.
//
// [UniqueID] generates monotonically increasing identifiers so message
// bodies in one test are distinguishable.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
