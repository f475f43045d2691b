// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for tp.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// They default to "unknown" / "0.1.0-dev" in development builds and
// test runs, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/tp/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/tp
package version
