// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	rpm2cpio "github.com/hashicorp/go-rpm2cpio"
	"github.com/pkg/errors"
)

// xzExternal selects the unxz executable as xz decompressor
const xzExternal = "external"

// CLI are the cli parameters for rpm2cpio binary
type CLI struct {
	Package           string           `arg:"" optional:"" name:"package" default:"-" help:"Path to rpm package. (\"-\" for STDIN)"`
	ExtendedFormats   bool             `short:"x" help:"Also recognize zstd and bzip2 payloads."`
	MaxExtractionTime int64            `optional:"" default:"-1" help:"Maximum time that a conversion should take (in seconds). (disable check: -1)"`
	MaxInputSize      int64            `optional:"" default:"1073741824" help:"Maximum input size that allowed is (in bytes). (disable check: -1)"`
	MaxOutputSize     int64            `optional:"" default:"1073741824" help:"Maximum size of the cpio archive (in bytes). (disable check: -1)"`
	Metrics           bool             `short:"M" optional:"" default:"false" help:"Print metrics to log after conversion."`
	Output            string           `short:"o" default:"-" help:"Output file for the cpio archive. (\"-\" for STDOUT)"`
	Verbose           bool             `short:"v" optional:"" help:"Verbose logging."`
	Version           kong.VersionFlag `short:"V" optional:"" help:"Print release version information."`
	Xz                string           `enum:"native,external" default:"native" help:"xz decompressor: native or external (unxz)."`
}

// Run the entrypoint into rpm2cpio as a cli tool
func Run(version, commit, date string) {
	var cli CLI
	kong.Parse(&cli,
		kong.Description("Convert the rpm package on standard input or first parameter to a cpio archive on standard output."),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("%s (%s), commit %s, built at %s", filepath.Base(os.Args[0]), version, commit, date),
		},
	)

	os.Exit(cli.Execute(context.Background(), os.Stdin, os.Stdout, os.Stderr))
}

// Execute converts the package and returns the exit code of the process.
// Diagnostics are written to stderr.
func (cli *CLI) Execute(ctx context.Context, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {

	// Check for verbose output
	logLevel := slog.LevelError
	if cli.Metrics {
		logLevel = slog.LevelInfo
	}
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// setup telemetry hook
	telemetryToLog := func(ctx context.Context, td *rpm2cpio.TelemetryData) {
		if cli.Metrics {
			logger.Info("conversion metrics", "metrics", td)
		}
	}

	// select the xz decompressor once
	xzDecompressor := rpm2cpio.NewXzDecompressor()
	if cli.Xz == xzExternal {
		xzDecompressor = rpm2cpio.NewExternalXz()
	}

	// process cli params
	config := rpm2cpio.NewConfig(
		rpm2cpio.WithExtendedFormats(cli.ExtendedFormats),
		rpm2cpio.WithLogger(logger),
		rpm2cpio.WithMaxInputSize(cli.MaxInputSize),
		rpm2cpio.WithMaxOutputSize(cli.MaxOutputSize),
		rpm2cpio.WithTelemetryHook(telemetryToLog),
		rpm2cpio.WithXzDecompressor(xzDecompressor),
	)

	// open package
	var name string
	src := bufio.NewReader(stdin)
	if cli.Package != "-" {
		name = cli.Package
		f, err := os.Open(cli.Package)
		if err != nil {
			return fail(stderr, name, errors.Wrap(err, "cannot open package"))
		}
		defer f.Close()
		src = bufio.NewReader(f)
	}

	// open output
	dst := stdout
	var out *os.File
	if cli.Output != "-" {
		var err error
		if out, err = os.Create(cli.Output); err != nil {
			return fail(stderr, name, errors.Wrap(err, "cannot create output"))
		}
		defer out.Close()
		dst = out
	}

	if cli.MaxExtractionTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second*time.Duration(cli.MaxExtractionTime))
		defer cancel()
	}

	// convert package
	if err := rpm2cpio.Convert(ctx, src, dst, config); err != nil {
		if out != nil {
			out.Close()
			os.Remove(out.Name())
		}
		return fail(stderr, name, err)
	}
	return 0
}

// fail prints a one line diagnostic for err and returns the exit code.
func fail(w io.Writer, name string, err error) int {
	prefix := "Error:"
	if len(name) > 0 {
		prefix = fmt.Sprintf("Error: %s", name)
	}

	switch {
	case errors.Is(err, rpm2cpio.ErrDecompressorUnavailable):
		fmt.Fprintln(w, "Error: could not find xz extractor")
		fmt.Fprintln(w, "Please install the xz utility or use the native decompressor (--xz=native)")
	case errors.Is(err, rpm2cpio.ErrNotAPackage):
		fmt.Fprintln(w, prefix, rpm2cpio.ErrNotAPackage)
	case errors.Is(err, rpm2cpio.ErrPayloadNotFound):
		fmt.Fprintln(w, prefix, rpm2cpio.ErrPayloadNotFound)
	default:
		fmt.Fprintln(w, prefix, err)
	}
	return 1
}
