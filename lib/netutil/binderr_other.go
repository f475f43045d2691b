// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package netutil

import (
	"errors"
	"os"
)

// ClassifyBindError recognizes only permission failures on platforms
// without unix errno values.
func ClassifyBindError(err error) BindFailure {
	if errors.Is(err, os.ErrPermission) {
		return BindFailurePermission
	}
	return BindFailureOther
}
