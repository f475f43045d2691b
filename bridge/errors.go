// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import "fmt"

// BindError reports that the listener could not bind its address.
// Fatal to the listener; the rest of the process keeps running.
type BindError struct {
	Addr string
	// Hint is a one-line remedy, empty when none applies.
	Hint string
	Err  error
}

func (e *BindError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("binding %s: %v (%s)", e.Addr, e.Err, e.Hint)
	}
	return fmt.Sprintf("binding %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// MalformedRequestError is a per-request submit failure answered with
// 400. It never affects other requests.
type MalformedRequestError struct {
	Reason string
	Err    error
}

func (e *MalformedRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed request: %s: %v", e.Reason, e.Err)
	}
	return "malformed request: " + e.Reason
}

func (e *MalformedRequestError) Unwrap() error { return e.Err }
