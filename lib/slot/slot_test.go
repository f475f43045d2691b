// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slot

import (
	"strings"
	"sync"
	"testing"

	"github.com/zeebo/blake3"
)

func TestInitialValueEmpty(t *testing.T) {
	slot := New()
	if got := slot.Read(); got != "" {
		t.Fatalf("Read() = %q, want empty", got)
	}
	if slot.Version() != 0 {
		t.Fatalf("Version() = %d, want 0", slot.Version())
	}
	_, fingerprint := slot.Snapshot()
	if fingerprint != Fingerprint(blake3.Sum256(nil)) {
		t.Fatalf("initial fingerprint = %s, want digest of empty input", fingerprint)
	}
}

func TestLastWriteWins(t *testing.T) {
	slot := New()
	slot.Write("A")
	slot.Write("B")

	if got := slot.Read(); got != "B" {
		t.Fatalf("Read() = %q, want %q", got, "B")
	}
	if slot.Version() != 2 {
		t.Fatalf("Version() = %d, want 2", slot.Version())
	}
}

func TestSnapshotFingerprintMatchesText(t *testing.T) {
	slot := New()
	slot.Write("world")

	text, fingerprint := slot.Snapshot()
	if text != "world" {
		t.Fatalf("Snapshot text = %q, want %q", text, "world")
	}
	if fingerprint != Fingerprint(blake3.Sum256([]byte("world"))) {
		t.Fatalf("fingerprint %s does not match text", fingerprint)
	}
	if len(fingerprint.String()) != 64 {
		t.Fatalf("fingerprint hex length = %d, want 64", len(fingerprint.String()))
	}
}

func TestConcurrentReadersNeverSeeTornWrites(t *testing.T) {
	slot := New()
	values := []string{
		strings.Repeat("a", 4096),
		strings.Repeat("b", 4096),
		strings.Repeat("c", 4096),
	}
	allowed := map[string]bool{"": true}
	for _, value := range values {
		allowed[value] = true
	}

	var waitGroup sync.WaitGroup
	stop := make(chan struct{})

	for reader := 0; reader < 4; reader++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				text, fingerprint := slot.Snapshot()
				if !allowed[text] {
					t.Errorf("reader observed a value that was never written (len %d)", len(text))
					return
				}
				if fingerprint != Fingerprint(blake3.Sum256([]byte(text))) {
					t.Errorf("fingerprint does not belong to the observed text")
					return
				}
			}
		}()
	}

	for round := 0; round < 2000; round++ {
		slot.Write(values[round%len(values)])
	}
	close(stop)
	waitGroup.Wait()
}
