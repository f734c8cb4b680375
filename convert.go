// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package rpm2cpio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Convert reads the rpm package from src and writes the decompressed cpio
// archive to dst. The whole input is read into memory before the payload is
// located, and dst is only written once the payload has been decompressed
// successfully. If cfg is nil, the default configuration is used.
//
// The returned error matches one of the sentinel errors of this package with
// [errors.Is], e.g. [ErrNotAPackage] or [ErrPayloadNotFound].
func Convert(ctx context.Context, src io.Reader, dst io.Writer, cfg *Config) error {
	if cfg == nil {
		cfg = NewConfig()
	}

	// prepare telemetry capturing
	td := &TelemetryData{PayloadOffset: -1}
	defer cfg.TelemetryHook()(ctx, td)
	defer captureExtractionDuration(td, time.Now())

	// limit input size
	limitedReader := newLimitErrorReader(src, cfg.MaxInputSize())
	defer captureInputSize(td, limitedReader)

	// check the lead
	lead, err := readLead(limitedReader)
	if err != nil {
		return handleError(cfg, td, inputError("lead", err))
	}
	if !IsRPM(lead) {
		return handleError(cfg, td, newError("lead", ErrNotAPackage, nil))
	}
	cfg.Logger().Debug("rpm lead found", "size", len(lead))

	// check if context is canceled
	if err := ctx.Err(); err != nil {
		return handleError(cfg, td, err)
	}

	// read remaining package
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return handleError(cfg, td, inputError("read", err))
	}

	// locate and decompress payload
	var cpio bytes.Buffer
	if err := extractPayload(ctx, &cpio, data, cfg, td); err != nil {
		return handleError(cfg, td, err)
	}

	// write cpio archive
	if _, err := cpio.WriteTo(dst); err != nil {
		return handleError(cfg, td, fmt.Errorf("cannot write cpio archive: %w", err))
	}

	cfg.Logger().Info("conversion finished", "format", td.PayloadFormat, "size", td.OutputSize)
	return nil
}

// inputError maps an error of the input reader. Exceeding the input limit is
// reported as [ErrMaxInputSizeExceeded], anything else as read error.
func inputError(op string, err error) error {
	if errors.Is(err, ErrMaxInputSizeExceeded) {
		return newError(op, ErrMaxInputSizeExceeded, nil)
	}
	return fmt.Errorf("cannot read input: %w", err)
}

// handleError records err as last error in td and returns it.
func handleError(cfg *Config, td *TelemetryData, err error) error {
	td.LastExtractionError = err
	cfg.Logger().Debug("conversion failed", "error", err)
	return err
}

// captureExtractionDuration ensures that the extraction duration is updated
func captureExtractionDuration(td *TelemetryData, start time.Time) {
	td.ExtractionDuration = time.Since(start)
}

// captureInputSize ensures that the input size is updated
func captureInputSize(td *TelemetryData, ler *limitErrorReader) {
	td.InputSize = ler.ReadBytes()
}
