// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// defaultPort matches what phones are told to open when no flag is given.
const defaultPort = 3000

// options is the parsed command line.
type options struct {
	port              int
	plainHTTP         bool
	allowHTTPFallback bool
	headless          bool
	stdin             bool
	logOutput         string
	verbose           bool
	noColor           bool
	noClipboard       bool
	showVersion       bool
	help              bool
}

// cliError is a usage mistake. It exits with status 2 and the message
// is printed with a pointer to --help.
type cliError struct {
	err error
}

func usageError(format string, args ...any) *cliError {
	return &cliError{err: fmt.Errorf(format, args...)}
}

func (e *cliError) Error() string { return e.err.Error() }

func (e *cliError) Unwrap() error { return e.err }

// ExitCode returns the conventional status for bad usage.
func (e *cliError) ExitCode() int { return 2 }

func newFlagSet(opts *options) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("tp", pflag.ContinueOnError)
	flagSet.IntVarP(&opts.port, "port", "p", defaultPort, "TCP port to listen on (1-65535)")
	flagSet.BoolVar(&opts.plainHTTP, "http", false, "serve plain HTTP instead of HTTPS")
	flagSet.BoolVar(&opts.allowHTTPFallback, "allow-http-fallback", false, "serve plain HTTP if certificate generation fails")
	flagSet.BoolVar(&opts.headless, "headless", false, "run without the terminal UI (implied when stdout is not a terminal)")
	flagSet.BoolVar(&opts.stdin, "stdin", false, "headless: publish standard input as the content phones can pull")
	flagSet.StringVar(&opts.logOutput, "log-output", "", "append JSON log records to this file")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log per-request debug events")
	flagSet.BoolVar(&opts.noColor, "no-color", false, "disable colors in the terminal UI")
	flagSet.BoolVar(&opts.noClipboard, "no-clipboard", false, "do not copy received text to the system clipboard")
	flagSet.BoolVar(&opts.showVersion, "version", false, "print version information and exit")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show help")
	return flagSet
}

// parseFlags parses and validates args. Help and version requests are
// reported through opts rather than as errors.
func parseFlags(args []string, stderr io.Writer) (*options, *pflag.FlagSet, error) {
	opts := &options{}
	flagSet := newFlagSet(opts)
	flagSet.SetOutput(io.Discard)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			opts.help = true
			return opts, flagSet, nil
		}
		return nil, flagSet, &cliError{err: err}
	}
	if opts.help || opts.showVersion {
		return opts, flagSet, nil
	}

	if rest := flagSet.Args(); len(rest) > 0 {
		return nil, flagSet, usageError("unexpected argument: %s", rest[0])
	}
	if opts.port < 1 || opts.port > 65535 {
		return nil, flagSet, usageError("--port must be between 1 and 65535, got %d", opts.port)
	}
	if opts.plainHTTP && opts.allowHTTPFallback {
		fmt.Fprintln(stderr, "warning: --allow-http-fallback has no effect with --http")
	}
	return opts, flagSet, nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprint(w, `tp - hand text between your phone and this computer over the LAN

Starts a small web server on the local network. Open the printed address
on a phone (or scan the QR code) to send text here, where it lands in
the clipboard and the history, or to pull the text you publish from the
editor.

HTTPS is used by default with a certificate generated at startup; the
phone will ask you to accept it once per run.

Usage:
  tp [flags]

Examples:
  # Interactive terminal UI on the default port
  tp

  # Plain HTTP on port 8080
  tp --http -p 8080

  # Print received text to stdout, no UI
  tp --headless > received.txt

  # Make a file available for the phone to pull
  tp --headless --stdin < notes.txt

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
