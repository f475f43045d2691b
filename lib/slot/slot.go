// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package slot holds the single outbound text value the PC exposes to
// the phone. The consumer writes it, the listener reads it, and the
// mutex is the only ordering guarantee: last write wins.
package slot

import (
	"encoding/hex"
	"sync"

	"github.com/zeebo/blake3"
)

// Fingerprint is the BLAKE3-256 digest of a slot value. The listener
// uses it as the ETag for GET /content.
type Fingerprint [32]byte

// String returns the lowercase hex encoding.
func (fingerprint Fingerprint) String() string {
	return hex.EncodeToString(fingerprint[:])
}

// emptyFingerprint is the digest of the initial empty value.
var emptyFingerprint = Fingerprint(blake3.Sum256(nil))

// Slot is a mutually exclusive text cell. The zero value is not usable;
// create one with New and share the pointer.
type Slot struct {
	mutex       sync.Mutex
	text        string
	fingerprint Fingerprint
	version     uint64
}

// New returns a slot holding the empty string.
func New() *Slot {
	return &Slot{fingerprint: emptyFingerprint}
}

// Write replaces the value. The digest is computed before taking the
// lock so the critical section is only the assignment.
func (slot *Slot) Write(text string) {
	fingerprint := Fingerprint(blake3.Sum256([]byte(text)))

	slot.mutex.Lock()
	slot.text = text
	slot.fingerprint = fingerprint
	slot.version++
	slot.mutex.Unlock()
}

// Read returns the current value.
func (slot *Slot) Read() string {
	slot.mutex.Lock()
	defer slot.mutex.Unlock()
	return slot.text
}

// Snapshot returns the value and its fingerprint from the same write.
func (slot *Slot) Snapshot() (string, Fingerprint) {
	slot.mutex.Lock()
	defer slot.mutex.Unlock()
	return slot.text, slot.fingerprint
}

// Version counts completed writes. Zero means never written.
func (slot *Slot) Version() uint64 {
	slot.mutex.Lock()
	defer slot.mutex.Unlock()
	return slot.version
}
