// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridgeui

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QR encodes url as a QR code drawn with half-block characters,
// two modules per terminal row. Inverted colors scan more reliably on
// dark terminal backgrounds.
func QR(url string) (string, error) {
	code, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("encoding join URL as QR code: %w", err)
	}
	return strings.TrimRight(code.ToSmallString(true), "\n"), nil
}
