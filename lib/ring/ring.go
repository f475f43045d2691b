// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ring provides a fixed-capacity circular buffer of values.
// The consumer keeps its inbound history and its log lines in rings so
// memory stays bounded under sustained traffic.
package ring

// Buffer holds at most Capacity values. Pushing onto a full buffer
// overwrites the oldest value. Not safe for concurrent use; the
// consumer owns its buffers from a single goroutine.
type Buffer[T any] struct {
	data []T
	// start is the index of the oldest stored value.
	start int
	count int
	// total counts every value ever pushed, including evicted ones.
	total uint64
}

// New creates a buffer with the given capacity. Panics if capacity is
// not positive.
func New[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("ring: capacity must be positive")
	}
	return &Buffer[T]{data: make([]T, capacity)}
}

// Push appends value, evicting the oldest value when full. Reports
// whether an eviction happened.
func (buffer *Buffer[T]) Push(value T) bool {
	capacity := len(buffer.data)
	buffer.total++
	if buffer.count < capacity {
		buffer.data[(buffer.start+buffer.count)%capacity] = value
		buffer.count++
		return false
	}
	buffer.data[buffer.start] = value
	buffer.start = (buffer.start + 1) % capacity
	return true
}

// Len returns the number of stored values.
func (buffer *Buffer[T]) Len() int { return buffer.count }

// Cap returns the capacity.
func (buffer *Buffer[T]) Cap() int { return len(buffer.data) }

// Total returns the number of values ever pushed.
func (buffer *Buffer[T]) Total() uint64 { return buffer.total }

// Oldest returns a copy of the stored values, oldest first.
func (buffer *Buffer[T]) Oldest() []T {
	result := make([]T, buffer.count)
	for index := range result {
		result[index] = buffer.data[(buffer.start+index)%len(buffer.data)]
	}
	return result
}

// Newest returns a copy of the stored values, newest first.
func (buffer *Buffer[T]) Newest() []T {
	result := make([]T, buffer.count)
	for index := range result {
		result[index] = buffer.data[(buffer.start+buffer.count-1-index)%len(buffer.data)]
	}
	return result
}

// Last returns the most recently pushed value.
func (buffer *Buffer[T]) Last() (T, bool) {
	var zero T
	if buffer.count == 0 {
		return zero, false
	}
	return buffer.data[(buffer.start+buffer.count-1)%len(buffer.data)], true
}

// At returns the value at position index counted from the newest
// (0 is the newest). ok is false when index is out of range.
func (buffer *Buffer[T]) At(index int) (T, bool) {
	var zero T
	if index < 0 || index >= buffer.count {
		return zero, false
	}
	return buffer.data[(buffer.start+buffer.count-1-index)%len(buffer.data)], true
}
