// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/bureau-foundation/tp/lib/netutil"
	"github.com/bureau-foundation/tp/lib/queue"
	"github.com/bureau-foundation/tp/lib/slot"
)

// DefaultMaxContentSize bounds a submit body. A clipboard hand-off is
// text typed or pasted on a phone; 16 MiB is far above that and still
// small enough that a stray upload cannot exhaust memory.
const DefaultMaxContentSize int64 = 16 << 20

// Server timeouts. Phones on flaky Wi-Fi get generous read and write
// windows; the header timeout stops idle half-open connections.
const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 60 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 120 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Bridge is the transfer listener.
type Bridge struct {
	// ListenAddr is the TCP address to listen on (e.g. "0.0.0.0:3000").
	ListenAddr string

	// TLS, if non-nil, switches the listener to HTTPS. Chosen once at
	// Start; there is no runtime switch.
	TLS *tls.Config

	// Inbound receives the text of every accepted submit.
	Inbound *queue.Sender[string]

	// Outbound is read for GET /content.
	Outbound *slot.Slot

	// Limiter, if non-nil, bounds the submit rate; excess requests
	// get 429 and produce no inbound message.
	Limiter *rate.Limiter

	// MaxContentSize bounds submit bodies. Zero means
	// DefaultMaxContentSize.
	MaxContentSize int64

	// Logger receives structured log output. If nil, slog.Default() is
	// used. Per-request events are logged at Debug; accepted content,
	// rejections and lifecycle at Info/Warn/Error.
	Logger *slog.Logger

	listener      net.Listener
	server        *http.Server
	done          chan struct{}
	inboundClosed atomic.Bool
	received      atomic.Uint64
}

// logger returns the configured logger or the default.
func (b *Bridge) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

func (b *Bridge) maxContentSize() int64 {
	if b.MaxContentSize > 0 {
		return b.MaxContentSize
	}
	return DefaultMaxContentSize
}

// Secure reports whether the listener serves HTTPS.
func (b *Bridge) Secure() bool { return b.TLS != nil }

// Start binds the listener and serves in the background until Stop is
// called or ctx is cancelled. Returns once the listener is bound, or a
// *BindError if binding fails.
func (b *Bridge) Start(ctx context.Context) error {
	if b.ListenAddr == "" {
		return fmt.Errorf("bridge: ListenAddr is required")
	}
	if b.Inbound == nil {
		return fmt.Errorf("bridge: Inbound is required")
	}
	if b.Outbound == nil {
		return fmt.Errorf("bridge: Outbound is required")
	}

	listener, err := net.Listen("tcp", b.ListenAddr)
	if err != nil {
		bindError := &BindError{
			Addr: b.ListenAddr,
			Hint: netutil.BindHint(err, portOf(b.ListenAddr)),
			Err:  err,
		}
		b.logger().Error("listener failed to bind",
			"listen_addr", b.ListenAddr,
			"error", err,
			"hint", bindError.Hint,
		)
		return bindError
	}
	b.listener = listener

	b.server = &http.Server{
		Handler:           b.Handler(),
		TLSConfig:         b.TLS,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		// TLS handshake failures (a phone refusing the self-signed
		// certificate) surface here.
		ErrorLog:    slog.NewLogLogger(b.logger().Handler(), slog.LevelWarn),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	b.done = make(chan struct{})

	go func() {
		defer close(b.done)
		var serveError error
		if b.TLS != nil {
			serveError = b.server.ServeTLS(listener, "", "")
		} else {
			serveError = b.server.Serve(listener)
		}
		if serveError != nil && !errors.Is(serveError, http.ErrServerClosed) {
			b.logger().Error("listener stopped", "error", serveError)
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			b.shutdown()
		case <-b.done:
		}
	}()

	scheme := "http"
	if b.TLS != nil {
		scheme = "https"
	}
	b.logger().Info("listener started",
		"listen_addr", listener.Addr().String(),
		"scheme", scheme,
	)
	return nil
}

// Addr returns the listener's address, useful when binding to port 0.
// Returns nil if the bridge has not been started.
func (b *Bridge) Addr() net.Addr {
	if b.listener == nil {
		return nil
	}
	return b.listener.Addr()
}

// Stop shuts the server down, letting in-flight requests finish for a
// short grace period, and waits for the serve goroutine to exit.
func (b *Bridge) Stop() {
	if b.server == nil {
		return
	}
	b.shutdown()
	<-b.done
}

// Wait blocks until the bridge has stopped.
func (b *Bridge) Wait() {
	if b.done != nil {
		<-b.done
	}
}

// Received returns how many submits were forwarded to the inbound
// queue.
func (b *Bridge) Received() uint64 {
	return b.received.Load()
}

func (b *Bridge) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := b.server.Shutdown(ctx); err != nil {
		b.logger().Warn("listener shutdown incomplete", "error", err)
		b.server.Close()
	}
}

// forward hands content to the inbound queue. After the first failure
// the queue is treated as permanently closed: forwarding stops and the
// failure is logged only once.
func (b *Bridge) forward(content string) {
	if b.inboundClosed.Load() {
		return
	}
	if err := b.Inbound.Send(content); err != nil {
		if b.inboundClosed.CompareAndSwap(false, true) {
			b.logger().Warn("inbound queue closed, received content is no longer delivered",
				"error", err,
			)
		}
		return
	}
	b.received.Add(1)
}

// portOf extracts the numeric port from a host:port address, or 0.
func portOf(address string) int {
	_, portText, err := net.SplitHostPort(address)
	if err != nil {
		return 0
	}
	port, _ := strconv.Atoi(portText)
	return port
}
