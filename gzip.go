// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package rpm2cpio

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// FormatGZip is the name of the gzip payload format.
const FormatGZip = "gzip"

// magicBytesGZip are the magic bytes for gzip compressed files.
//
// https://socketloop.com/tutorials/golang-gunzip-file
var magicBytesGZip = [][]byte{
	{0x1f, 0x8b},
}

// NewGZipDecompressor returns a [Decompressor] for gzip streams.
func NewGZipDecompressor() Decompressor {
	return &streamDecompressor{fn: decompressGZipStream}
}

// decompressGZipStream returns an io.Reader that decompresses src with gzip algorithm.
func decompressGZipStream(src io.Reader) (io.Reader, error) {
	return gzip.NewReader(src)
}
