// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	_ "embed"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzhttp"
)

//go:embed static/index.html
var indexHTML []byte

// contentField is the form field carrying submitted text.
const contentField = "content"

// Handler returns the bridge's HTTP handler. Exposed so tests (and
// embedders) can serve it without binding a port.
func (b *Bridge) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", b.handleIndex)
	mux.HandleFunc("POST /send", b.handleSend)
	mux.HandleFunc("POST /submit", b.handleSend)
	mux.HandleFunc("GET /content", b.handleContent)
	return gzhttp.GzipHandler(mux)
}

func (b *Bridge) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Write(indexHTML)
}

func (b *Bridge) handleSend(w http.ResponseWriter, r *http.Request) {
	logger := b.logger().With("remote_addr", r.RemoteAddr)

	if b.Limiter != nil && !b.Limiter.Allow() {
		logger.Warn("submit rate limited")
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	content, err := b.parseContent(w, r)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		logger.Warn("rejected submit", "status", status, "error", err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	logger.Info("received content", "length", len(content))
	b.forward(content)
	w.WriteHeader(http.StatusOK)
}

// parseContent extracts the content field from a form-encoded body.
// Query parameters are ignored; only the body counts.
func (b *Bridge) parseContent(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, b.maxContentSize())
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", err
		}
		return "", &MalformedRequestError{Reason: "invalid form encoding", Err: err}
	}

	values, ok := r.PostForm[contentField]
	if !ok || len(values) == 0 {
		return "", &MalformedRequestError{Reason: "missing field " + contentField}
	}
	content := values[0]
	if content == "" {
		return "", &MalformedRequestError{Reason: "empty field " + contentField}
	}
	if !utf8.ValidString(content) {
		return "", &MalformedRequestError{Reason: "content is not valid UTF-8"}
	}
	return content, nil
}

func (b *Bridge) handleContent(w http.ResponseWriter, r *http.Request) {
	text, fingerprint := b.Outbound.Snapshot()
	etag := `"` + fingerprint.String() + `"`

	header := w.Header()
	header.Set("ETag", etag)
	header.Set("Cache-Control", "no-cache")
	header.Set("X-Content-Type-Options", "nosniff")

	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	header.Set("Content-Type", "text/plain; charset=utf-8")
	b.logger().Debug("serving outbound content", "remote_addr", r.RemoteAddr, "length", len(text))
	io.WriteString(w, text)
}

// etagMatches implements the weak comparison of If-None-Match.
func etagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
