// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package rpm2cpio

import (
	"bytes"
	"context"
	"errors"
	"io"
)

// Format describes a payload compression format.
type Format struct {
	// Name of the format, e.g. [FormatXz].
	Name string

	// MagicBytes are the alternative byte sequences a stream of this format starts with.
	MagicBytes [][]byte

	// Decompressor decodes a stream of this format.
	Decompressor Decompressor
}

// LocatePayload searches data for the payload. The formats are tried in the
// given order and the first format whose magic bytes occur anywhere in data
// wins, together with the offset of its first occurrence.
//
// Note that a format earlier in the list wins even if the magic bytes of a
// later format occur at a lower offset. With the default formats this means an
// xz payload is always preferred over gzip, although the two byte gzip magic
// may show up before the xz magic, e.g. inside the rpm headers.
func LocatePayload(data []byte, formats []Format) (Format, int, bool) {
	for _, f := range formats {
		if idx := findMagicBytes(data, f.MagicBytes); idx != -1 {
			return f, idx, true
		}
	}
	return Format{}, -1, false
}

// ExtractPayload locates the compressed payload in data, which holds the bytes
// after the rpm lead, and returns the decompressed cpio archive. A nil cfg
// uses the defaults of [NewConfig].
func ExtractPayload(ctx context.Context, data []byte, cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	var buf bytes.Buffer
	if err := extractPayload(ctx, &buf, data, cfg, &TelemetryData{}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// extractPayload locates the payload in data and writes the decompressed
// stream to dst, limited by the maximum output size of cfg.
func extractPayload(ctx context.Context, dst io.Writer, data []byte, cfg *Config, td *TelemetryData) error {

	// select format
	f, offset, ok := LocatePayload(data, cfg.Formats())
	if !ok {
		return newError("locate", ErrPayloadNotFound, nil)
	}
	td.PayloadFormat = f.Name
	td.PayloadOffset = int64(offset)
	cfg.Logger().Debug("payload located", "format", f.Name, "offset", offset)

	payloadError := func(kind error, err error) error {
		return &Error{Op: "decompress", Kind: kind, Format: f.Name, Offset: offset, Err: err}
	}

	// start decompression
	stream, err := f.Decompressor.Decompress(ctx, bytes.NewReader(data[offset:]))
	if err != nil {
		if errors.Is(err, ErrDecompressorUnavailable) {
			return payloadError(ErrDecompressorUnavailable, err)
		}
		return payloadError(ErrDecompressionFailed, err)
	}
	defer func() {
		if closer, ok := stream.(io.Closer); ok {
			closer.Close()
		}
	}()

	// check if context is canceled
	if err := ctx.Err(); err != nil {
		return payloadError(ErrDecompressionFailed, err)
	}

	// copy decompressed data
	n, err := io.Copy(newLimitErrorWriter(dst, cfg.MaxOutputSize()), &contextReader{ctx: ctx, r: stream})
	td.OutputSize = n
	if err != nil {
		if errors.Is(err, ErrMaxOutputSizeExceeded) {
			return payloadError(ErrMaxOutputSizeExceeded, nil)
		}
		return payloadError(ErrDecompressionFailed, err)
	}

	// finished
	return nil
}

// findMagicBytes returns the lowest offset at which one of magicBytes occurs in
// data, or -1 if none of them is present.
func findMagicBytes(data []byte, magicBytes [][]byte) int {
	found := -1
	for _, mb := range magicBytes {
		if idx := bytes.Index(data, mb); idx != -1 && (found == -1 || idx < found) {
			found = idx
		}
	}
	return found
}

// contextReader stops reading from r once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
