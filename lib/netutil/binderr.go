// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

// BindFailure classifies why a listen call failed.
type BindFailure int

const (
	// BindFailureOther is any failure without a specific remedy.
	BindFailureOther BindFailure = iota
	// BindFailureInUse means another process owns the port.
	BindFailureInUse
	// BindFailurePermission means the port needs privileges.
	BindFailurePermission
	// BindFailureAddress means the address is not local to this host.
	BindFailureAddress
)

// BindHint returns a one-line remedy for a listen error on port.
func BindHint(err error, port int) string {
	switch ClassifyBindError(err) {
	case BindFailureInUse:
		return "another process is using this port; pick a different one with --port"
	case BindFailurePermission:
		if port < 1024 {
			return "ports below 1024 need elevated privileges; use a port of 1024 or higher"
		}
		return "permission denied binding the port; check firewall or sandbox policy"
	case BindFailureAddress:
		return "the listen address is not assigned to any local interface"
	default:
		return ""
	}
}
