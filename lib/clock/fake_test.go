// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockNow(t *testing.T) {
	clock := Fake(epoch)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	clock.Advance(5 * time.Second)
	want := epoch.Add(5 * time.Second)
	if got := clock.Now(); !got.Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeTickerFiresPerInterval(t *testing.T) {
	clock := Fake(epoch)
	ticker := clock.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	clock.Advance(50 * time.Millisecond)
	select {
	case <-ticker.C:
		t.Fatal("ticker fired before its interval")
	default:
	}

	clock.Advance(50 * time.Millisecond)
	select {
	case <-ticker.C:
	default:
		t.Fatal("ticker did not fire at its interval")
	}
}

func TestFakeTickerDropsWhenFull(t *testing.T) {
	clock := Fake(epoch)
	ticker := clock.NewTicker(time.Second)

	clock.Advance(5 * time.Second)

	select {
	case <-ticker.C:
	default:
		t.Fatal("expected one pending tick")
	}
	select {
	case <-ticker.C:
		t.Fatal("expected ticks beyond the buffer to be dropped")
	default:
	}
}

func TestFakeTickerStop(t *testing.T) {
	clock := Fake(epoch)
	ticker := clock.NewTicker(time.Second)
	ticker.Stop()

	clock.Advance(3 * time.Second)
	select {
	case <-ticker.C:
		t.Fatal("stopped ticker fired")
	default:
	}
}

func TestFakeNewTickerPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero interval")
		}
	}()
	Fake(epoch).NewTicker(0)
}

func TestWaitForTickers(t *testing.T) {
	clock := Fake(epoch)
	registered := make(chan struct{})
	go func() {
		clock.NewTicker(time.Second)
		close(registered)
	}()
	clock.WaitForTickers(1)
	<-registered
}
