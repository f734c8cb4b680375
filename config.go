// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package rpm2cpio

import (
	"context"
	"io"
	"log/slog"
)

// ConfigOption is a function pointer to implement the option pattern
type ConfigOption func(*Config)

// Config provides a configuration struct and options to adjust the configuration.
//
// The configuration struct holds all configuration options for the conversion.
// The configuration options can be adjusted using the option pattern style.
//
// The decompressors are chosen once, when the configuration is created, and
// are not changed during a conversion.
type Config struct {
	// extendedFormats enables zstd and bzip2 payloads in addition to xz and gzip
	extendedFormats bool

	// gzipDecompressor decompresses gzip payloads
	gzipDecompressor Decompressor

	// logger stream for the conversion
	logger logger

	// maxInputSize is the maximum size of the input.
	// Set value to -1 to disable the check.
	maxInputSize int64

	// maxOutputSize is the maximum size of the decompressed payload.
	// Set value to -1 to disable the check.
	maxOutputSize int64

	// telemetryHook is a function to consume telemetry data after finished conversion
	// Important: do not adjust this value after conversion started
	telemetryHook TelemetryHook

	// xzDecompressor decompresses xz payloads
	xzDecompressor Decompressor
}

// ExtendedFormats returns true if zstd and bzip2 payloads are recognized.
func (c *Config) ExtendedFormats() bool {
	return c.extendedFormats
}

// Formats returns the payload formats in the order of their priority. The
// default order is xz before gzip. With extended formats enabled the order is
// xz, zstd, gzip and bzip2.
func (c *Config) Formats() []Format {
	xz := Format{Name: FormatXz, MagicBytes: magicBytesXz, Decompressor: c.xzDecompressor}
	gz := Format{Name: FormatGZip, MagicBytes: magicBytesGZip, Decompressor: c.gzipDecompressor}
	if !c.extendedFormats {
		return []Format{xz, gz}
	}
	return []Format{
		xz,
		{Name: FormatZstd, MagicBytes: magicBytesZstd, Decompressor: &streamDecompressor{fn: decompressZstdStream}},
		gz,
		{Name: FormatBzip2, MagicBytes: magicBytesBzip2, Decompressor: &streamDecompressor{fn: decompressBzip2Stream}},
	}
}

// GZipDecompressor returns the decompressor for gzip payloads.
func (c *Config) GZipDecompressor() Decompressor {
	return c.gzipDecompressor
}

// Logger returns the logger.
func (c *Config) Logger() logger {
	return c.logger
}

// MaxInputSize returns the maximum size of the input.
func (c *Config) MaxInputSize() int64 {
	return c.maxInputSize
}

// MaxOutputSize returns the maximum size of the decompressed payload.
func (c *Config) MaxOutputSize() int64 {
	return c.maxOutputSize
}

// TelemetryHook returns the telemetry hook.
func (c *Config) TelemetryHook() TelemetryHook {
	if c.telemetryHook == nil {
		return defaultTelemetryHook
	}
	return c.telemetryHook
}

// XzDecompressor returns the decompressor for xz payloads.
func (c *Config) XzDecompressor() Decompressor {
	return c.xzDecompressor
}

const (
	defaultExtendedFormats = false         // xz and gzip only
	defaultMaxInputSize    = 1 << (10 * 3) // 1 Gb
	defaultMaxOutputSize   = 1 << (10 * 3) // 1 Gb
)

var (
	// slog to discard
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	// no operation telemetry hook
	defaultTelemetryHook = func(ctx context.Context, d *TelemetryData) {
		// noop
	}
)

// NewConfig is a generator option that takes opts as adjustments of the
// default configuration in an option pattern style.
func NewConfig(opts ...ConfigOption) *Config {

	// setup default values
	config := &Config{
		extendedFormats:  defaultExtendedFormats,
		gzipDecompressor: NewGZipDecompressor(),
		logger:           defaultLogger,
		maxInputSize:     defaultMaxInputSize,
		maxOutputSize:    defaultMaxOutputSize,
		telemetryHook:    defaultTelemetryHook,
		xzDecompressor:   NewXzDecompressor(),
	}

	// Loop through each option
	for _, opt := range opts {
		opt(config)
	}

	return config
}

// WithExtendedFormats options pattern function to recognize zstd and bzip2
// payloads in addition to xz and gzip.
func WithExtendedFormats(enable bool) ConfigOption {
	return func(c *Config) {
		c.extendedFormats = enable
	}
}

// WithGZipDecompressor options pattern function to replace the gzip decompressor.
// A nil decompressor is ignored.
func WithGZipDecompressor(d Decompressor) ConfigOption {
	return func(c *Config) {
		if d != nil {
			c.gzipDecompressor = d
		}
	}
}

// WithLogger options pattern function to set a custom logger.
func WithLogger(logger logger) ConfigOption {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithMaxInputSize options pattern function to set MaxInputSize for the input. (-1 to disable check)
func WithMaxInputSize(maxInputSize int64) ConfigOption {
	return func(c *Config) {
		c.maxInputSize = maxInputSize
	}
}

// WithMaxOutputSize options pattern function to set the maximum size of the
// decompressed payload. (-1 to disable check)
func WithMaxOutputSize(maxOutputSize int64) ConfigOption {
	return func(c *Config) {
		c.maxOutputSize = maxOutputSize
	}
}

// WithTelemetryHook options pattern function to set a [TelemetryHook], which is called after the conversion.
func WithTelemetryHook(hook TelemetryHook) ConfigOption {
	return func(c *Config) {
		c.telemetryHook = hook
	}
}

// WithXzDecompressor options pattern function to replace the xz decompressor,
// e.g. with [NewExternalXz]. A nil decompressor is ignored.
func WithXzDecompressor(d Decompressor) ConfigOption {
	return func(c *Config) {
		if d != nil {
			c.xzDecompressor = d
		}
	}
}
