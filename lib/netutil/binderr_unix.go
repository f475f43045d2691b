// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package netutil

import (
	"errors"

	"golang.org/x/sys/unix"
)

// ClassifyBindError inspects the errno under a net.OpError.
func ClassifyBindError(err error) BindFailure {
	switch {
	case err == nil:
		return BindFailureOther
	case errors.Is(err, unix.EADDRINUSE):
		return BindFailureInUse
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return BindFailurePermission
	case errors.Is(err, unix.EADDRNOTAVAIL):
		return BindFailureAddress
	default:
		return BindFailureOther
	}
}
