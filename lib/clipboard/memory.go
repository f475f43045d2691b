// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clipboard

import "sync"

// Memory is an in-process clipboard for tests. Writes record every
// value. Running with --no-clipboard passes a nil Clipboard instead.
type Memory struct {
	mutex  sync.Mutex
	text   string
	writes []string
	// Err, when set, is returned by every call.
	Err error
}

func (memory *Memory) WriteText(text string) error {
	memory.mutex.Lock()
	defer memory.mutex.Unlock()
	if memory.Err != nil {
		return memory.Err
	}
	memory.text = text
	memory.writes = append(memory.writes, text)
	return nil
}

func (memory *Memory) ReadText() (string, error) {
	memory.mutex.Lock()
	defer memory.mutex.Unlock()
	if memory.Err != nil {
		return "", memory.Err
	}
	return memory.text, nil
}

// Writes returns every successfully written value in order.
func (memory *Memory) Writes() []string {
	memory.mutex.Lock()
	defer memory.mutex.Unlock()
	return append([]string(nil), memory.writes...)
}
