// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package queue

import (
	"errors"
	"sync"
)

var (
	// ErrClosed is returned by Send after the receiver, or the sending
	// handle itself, has been closed.
	ErrClosed = errors.New("queue: closed")

	// ErrEmpty is returned by TryReceive when nothing is queued but
	// producers are still attached.
	ErrEmpty = errors.New("queue: empty")

	// ErrDisconnected is returned by TryReceive when nothing is queued
	// and every sender handle has been closed.
	ErrDisconnected = errors.New("queue: all senders closed")
)

// state is shared between every handle of one queue.
type state[T any] struct {
	mutex          sync.Mutex
	items          []T
	head           int
	senders        int
	receiverClosed bool
}

// Sender is one producer handle. A single Sender is safe for concurrent
// use; Clone exists to track independent producers for disconnection.
type Sender[T any] struct {
	shared *state[T]
	once   sync.Once
	// closed is guarded by shared.mutex.
	closed bool
}

// Receiver is the single consumer handle.
type Receiver[T any] struct {
	shared *state[T]
}

// New creates a queue with one sender handle.
func New[T any]() (*Sender[T], *Receiver[T]) {
	shared := &state[T]{senders: 1}
	return &Sender[T]{shared: shared}, &Receiver[T]{shared: shared}
}

// Send enqueues value. Values from one goroutine are received in the
// order they were sent. Never blocks beyond the append.
func (sender *Sender[T]) Send(value T) error {
	shared := sender.shared
	shared.mutex.Lock()
	defer shared.mutex.Unlock()

	if shared.receiverClosed || sender.closed {
		return ErrClosed
	}
	shared.items = append(shared.items, value)
	return nil
}

// Clone returns a new producer handle on the same queue. Each handle
// must be closed independently.
func (sender *Sender[T]) Clone() *Sender[T] {
	shared := sender.shared
	shared.mutex.Lock()
	defer shared.mutex.Unlock()

	shared.senders++
	return &Sender[T]{shared: shared}
}

// Close drops this producer handle: later Sends on it return
// ErrClosed, and once every handle is closed the receiver reports
// ErrDisconnected after draining. Values sent before Close stay queued.
// Close is idempotent per handle.
func (sender *Sender[T]) Close() {
	sender.once.Do(func() {
		shared := sender.shared
		shared.mutex.Lock()
		defer shared.mutex.Unlock()
		sender.closed = true
		shared.senders--
	})
}

// TryReceive dequeues the oldest value without blocking. Returns
// ErrEmpty or ErrDisconnected when nothing is available.
func (receiver *Receiver[T]) TryReceive() (T, error) {
	shared := receiver.shared
	shared.mutex.Lock()
	defer shared.mutex.Unlock()

	var zero T
	if shared.head == len(shared.items) {
		if shared.senders <= 0 {
			return zero, ErrDisconnected
		}
		return zero, ErrEmpty
	}

	value := shared.items[shared.head]
	shared.items[shared.head] = zero
	shared.head++
	shared.compactLocked()
	return value, nil
}

// Drain dequeues up to limit values (all of them when limit <= 0) in
// FIFO order. Returns nil when the queue is empty.
func (receiver *Receiver[T]) Drain(limit int) []T {
	shared := receiver.shared
	shared.mutex.Lock()
	defer shared.mutex.Unlock()

	available := len(shared.items) - shared.head
	if available == 0 {
		return nil
	}
	if limit <= 0 || limit > available {
		limit = available
	}

	result := make([]T, limit)
	copy(result, shared.items[shared.head:shared.head+limit])

	var zero T
	for index := shared.head; index < shared.head+limit; index++ {
		shared.items[index] = zero
	}
	shared.head += limit
	shared.compactLocked()
	return result
}

// Len reports how many values are waiting.
func (receiver *Receiver[T]) Len() int {
	shared := receiver.shared
	shared.mutex.Lock()
	defer shared.mutex.Unlock()
	return len(shared.items) - shared.head
}

// Connected reports whether at least one sender handle is open.
func (receiver *Receiver[T]) Connected() bool {
	shared := receiver.shared
	shared.mutex.Lock()
	defer shared.mutex.Unlock()
	return shared.senders > 0
}

// Close detaches the consumer. Queued values are discarded and every
// later Send returns ErrClosed.
func (receiver *Receiver[T]) Close() {
	shared := receiver.shared
	shared.mutex.Lock()
	defer shared.mutex.Unlock()

	shared.receiverClosed = true
	shared.items = nil
	shared.head = 0
}

// compactLocked releases the consumed prefix once it dominates the
// backing array, so a long-lived queue does not retain drained slots.
func (shared *state[T]) compactLocked() {
	if shared.head == len(shared.items) {
		shared.items = shared.items[:0]
		shared.head = 0
		return
	}
	if shared.head >= 64 && shared.head*2 >= len(shared.items) {
		remaining := len(shared.items) - shared.head
		compacted := make([]T, remaining, remaining*2)
		copy(compacted, shared.items[shared.head:])
		shared.items = compacted
		shared.head = 0
	}
}
