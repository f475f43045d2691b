// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clipboard mirrors received text into the local OS clipboard.
//
// The clipboard is an opaque, fallible side effect: a headless box has
// none, Wayland without wl-clipboard has none, and a remote SSH session
// only has the terminal's. [System] tries the native clipboard first and
// falls back to an OSC 52 escape on the controlling terminal, which most
// terminal emulators (and tmux) forward to the user's real clipboard.
// Callers treat every error as non-fatal.
package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable reports that no clipboard mechanism is usable.
var ErrUnavailable = errors.New("clipboard unavailable")

// Clipboard reads and writes plain text.
type Clipboard interface {
	WriteText(text string) error
	ReadText() (string, error)
}

// native is the OS clipboard backend; replaced in tests.
type native interface {
	WriteAll(text string) error
	ReadAll() (string, error)
	Supported() bool
}

type atottoBackend struct{}

func (atottoBackend) WriteAll(text string) error { return clipboard.WriteAll(text) }
func (atottoBackend) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (atottoBackend) Supported() bool            { return !clipboard.Unsupported }

// System is the production clipboard.
type System struct {
	backend native
	// openTerminal opens the terminal for OSC 52 writes. Nil disables
	// the fallback.
	openTerminal func() (io.WriteCloser, error)
	// inTmux wraps OSC 52 in a tmux DCS passthrough as well.
	inTmux bool

	mutex sync.Mutex
}

// NewSystem returns the native clipboard with OSC 52 fallback on
// /dev/tty. tmux reports whether the process runs inside tmux, which
// the caller decides once at startup.
func NewSystem(tmux bool) *System {
	return &System{
		backend: atottoBackend{},
		openTerminal: func() (io.WriteCloser, error) {
			return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		},
		inTmux: tmux,
	}
}

// WriteText sets the clipboard. Returns an error wrapping
// ErrUnavailable only when both mechanisms failed.
func (system *System) WriteText(text string) error {
	system.mutex.Lock()
	defer system.mutex.Unlock()

	var nativeErr error
	if system.backend.Supported() {
		if nativeErr = system.backend.WriteAll(text); nativeErr == nil {
			return nil
		}
	} else {
		nativeErr = errors.New("no native clipboard utility found")
	}

	if system.openTerminal == nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, nativeErr)
	}
	if err := system.writeOSC52(text); err != nil {
		return fmt.Errorf("%w: native: %v; osc52: %v", ErrUnavailable, nativeErr, err)
	}
	return nil
}

// ReadText returns the clipboard contents. OSC 52 reads need a
// terminal round trip that a running TUI cannot share, so only the
// native clipboard is consulted.
func (system *System) ReadText() (string, error) {
	system.mutex.Lock()
	defer system.mutex.Unlock()

	if !system.backend.Supported() {
		return "", ErrUnavailable
	}
	text, err := system.backend.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return text, nil
}

// writeOSC52 writes the escape directly to the terminal, bypassing the
// TUI renderer; the sequence has no visible effect. BEL terminates the
// OSC because it survives SSH and tmux intact.
func (system *System) writeOSC52(text string) error {
	terminal, err := system.openTerminal()
	if err != nil {
		return err
	}
	defer terminal.Close()

	sequence := OSC52(text)
	if system.inTmux {
		if _, err := io.WriteString(terminal, "\x1bPtmux;\x1b"+sequence+"\x1b\\"); err != nil {
			return err
		}
	}
	_, err = io.WriteString(terminal, sequence)
	return err
}

// OSC52 returns the escape sequence that sets the clipboard to text.
func OSC52(text string) string {
	return "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\x07"
}

// InTmux reports whether the given TMUX and TERM values indicate a
// tmux or screen session.
func InTmux(tmuxVariable, termVariable string) bool {
	return tmuxVariable != "" ||
		strings.HasPrefix(termVariable, "tmux") ||
		strings.HasPrefix(termVariable, "screen")
}
