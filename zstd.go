// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package rpm2cpio

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// FormatZstd is the name of the zstandard payload format.
const FormatZstd = "zstd"

// magicBytesZstd is the magic bytes for zstandard files.
// reference: https://www.rfc-editor.org/rfc/rfc8878.html
var magicBytesZstd = [][]byte{
	{0x28, 0xb5, 0x2f, 0xfd},
}

// decompressZstdStream returns an io.Reader that decompresses src with zstandard algorithm.
// The decoder runs single threaded and releases its resources on Close.
func decompressZstdStream(src io.Reader) (io.Reader, error) {
	dec, err := zstd.NewReader(src, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}
