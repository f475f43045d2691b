// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides the injectable time source used by the headless
// consumer loop. Production code uses Real(); tests use Fake() and drive
// ticks explicitly with Advance, so poll cadence is tested without sleeps.
package clock
