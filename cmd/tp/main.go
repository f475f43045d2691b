// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// tp is a LAN clipboard bridge. It serves a one-page web app on the
// local network: a phone posts text to it, and the text shows up in
// the terminal UI and the system clipboard. Text published from the
// UI's editor is served back for the phone to pull.
//
// The listener runs on net/http goroutines; everything it receives
// flows through unbounded queues to a single consumer goroutine (the
// bubbletea update loop, or the headless poll loop). The only state
// shared the other way is the outbound slot.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/bureau-foundation/tp/bridge"
	"github.com/bureau-foundation/tp/lib/bridgeui"
	"github.com/bureau-foundation/tp/lib/certgen"
	"github.com/bureau-foundation/tp/lib/clipboard"
	"github.com/bureau-foundation/tp/lib/clock"
	"github.com/bureau-foundation/tp/lib/consumer"
	"github.com/bureau-foundation/tp/lib/logsink"
	"github.com/bureau-foundation/tp/lib/netutil"
	"github.com/bureau-foundation/tp/lib/queue"
	"github.com/bureau-foundation/tp/lib/slot"
	"github.com/bureau-foundation/tp/lib/version"
)

// Submit rate limit: generous for a person tapping "send", tight
// enough that a runaway script on the LAN cannot flood the history.
const (
	submitRate  = rate.Limit(20)
	submitBurst = 40
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			if _, ok := err.(*cliError); ok {
				fmt.Fprintln(os.Stderr, "run 'tp --help' for usage")
			}
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, flagSet, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	if opts.help {
		printHelp(os.Stdout, flagSet)
		return nil
	}
	if opts.showVersion {
		version.Print("tp")
		return nil
	}

	headless := opts.headless || !term.IsTerminal(int(os.Stdout.Fd()))
	if opts.stdin && !headless {
		return usageError("--stdin requires --headless")
	}

	logLines, logReceiver := queue.New[string]()
	inbound, inboundReceiver := queue.New[string]()

	loggerOptions := logsink.Options{Level: slog.LevelInfo}
	if opts.verbose {
		loggerOptions.Level = slog.LevelDebug
	}
	if opts.logOutput != "" {
		logFile, err := os.OpenFile(opts.logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log output: %w", err)
		}
		defer logFile.Close()
		loggerOptions.File = logFile
	}
	logger := logsink.NewLogger(logsink.NewWriter(logLines), loggerOptions)
	slog.SetDefault(logger)

	ip, err := netutil.LocalIP()
	if err != nil {
		logger.Warn("could not determine a LAN address, using loopback", "error", err)
		ip = net.IPv4(127, 0, 0, 1)
	}

	tlsConfig, err := serverTLS(opts, ip, logger)
	if err != nil {
		return err
	}

	outbound := slot.New()
	if opts.stdin {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading standard input: %w", err)
		}
		if len(content) > 0 {
			outbound.Write(string(content))
			logger.Info("outbound content loaded from standard input", "length", len(content))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener := &bridge.Bridge{
		ListenAddr: net.JoinHostPort("0.0.0.0", strconv.Itoa(opts.port)),
		TLS:        tlsConfig,
		Inbound:    inbound,
		Outbound:   outbound,
		Limiter:    rate.NewLimiter(submitRate, submitBurst),
		Logger:     logger,
	}
	// A bind failure is already in the log queue; the consumer below
	// still runs so it is shown.
	startError := listener.Start(ctx)
	if startError == nil {
		defer listener.Stop()
	}

	var systemClipboard clipboard.Clipboard
	if !opts.noClipboard {
		systemClipboard = clipboard.NewSystem(clipboard.InTmux(os.Getenv("TMUX"), os.Getenv("TERM")))
	}
	bridgeConsumer := consumer.New(consumer.Config{
		Inbound:   inboundReceiver,
		Logs:      logReceiver,
		Outbound:  outbound,
		Clipboard: systemClipboard,
		Logger:    logger,
	})

	joinURL := netutil.JoinURL(tlsConfig != nil, ip, opts.port)

	if headless {
		return runHeadless(ctx, bridgeConsumer, joinURL, startError, os.Stdout, os.Stderr)
	}

	if opts.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	model := bridgeui.NewModel(bridgeui.Config{
		Consumer: bridgeConsumer,
		JoinURL:  joinURL,
		ShowLogs: startError != nil,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}

// serverTLS builds the listener's TLS configuration, or returns nil
// for plain HTTP. Certificate failure is fatal unless the fallback is
// allowed.
func serverTLS(opts *options, ip net.IP, logger *slog.Logger) (*tls.Config, error) {
	if opts.plainHTTP {
		return nil, nil
	}
	bundle, err := certgen.Generate([]string{ip.String(), "localhost"})
	if err == nil {
		var config *tls.Config
		config, err = bundle.ServerConfig()
		if err == nil {
			logger.Info("generated self-signed certificate", "ip", ip.String(), "valid_for", "1 year")
			return config, nil
		}
	}
	if !opts.allowHTTPFallback {
		return nil, fmt.Errorf("preparing HTTPS (use --http or --allow-http-fallback to serve plain HTTP): %w", err)
	}
	logger.Warn("certificate generation failed, serving plain HTTP", "error", err)
	return nil, nil
}

// runHeadless prints the join address and then streams received text
// to stdout and log lines to stderr until interrupted.
func runHeadless(ctx context.Context, bridgeConsumer *consumer.Consumer, joinURL string, startError error, stdout, stderr io.Writer) error {
	printBanner(stderr, joinURL)

	onBatch := func(batch consumer.Batch) {
		for _, line := range batch.Logs {
			fmt.Fprintln(stderr, line)
		}
		for _, text := range batch.Inbound {
			fmt.Fprintln(stdout, text)
		}
	}

	if startError != nil {
		// Flush the bind failure log line before exiting.
		onBatch(bridgeConsumer.Poll())
		return startError
	}
	return bridgeConsumer.Run(ctx, clock.Real(), consumer.DefaultPollInterval, onBatch)
}

func printBanner(w io.Writer, joinURL string) {
	fmt.Fprintf(w, "tp %s\n\nOpen on your phone: %s\n", version.Short(), joinURL)
	if qr, err := bridgeui.QR(joinURL); err == nil {
		fmt.Fprintf(w, "\n%s\n", qr)
	}
	fmt.Fprint(w, "\nListening. Press Ctrl+C to stop.\n\n")
}
