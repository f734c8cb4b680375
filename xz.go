// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package rpm2cpio

import (
	"io"

	"github.com/ulikunitz/xz"
)

// FormatXz is the name of the xz payload format.
const FormatXz = "xz"

// magicBytesXz is the magic bytes for xz files.
// reference https://tukaani.org/xz/xz-file-format-1.0.4.txt
var magicBytesXz = [][]byte{
	{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00},
}

// NewXzDecompressor returns the native [Decompressor] for xz streams. Use
// [NewExternalXz] to decompress with the `unxz` executable instead.
func NewXzDecompressor() Decompressor {
	return &streamDecompressor{fn: decompressXzStream}
}

// decompressXzStream returns an io.Reader that decompresses src with xz algorithm
func decompressXzStream(src io.Reader) (io.Reader, error) {
	return xz.NewReader(&xzFooterReader{r: src})
}

// footerMagicXz terminates every xz stream. Only stream padding (zero bytes)
// may follow it.
var footerMagicXz = [2]byte{0x59, 0x5A}

// xzFooterReader reports io.ErrUnexpectedEOF if src ends before the footer
// magic of the last xz stream. The xz reader accepts input that stops at a
// block or index boundary as complete.
type xzFooterReader struct {
	r    io.Reader
	last [2]byte // last two non-zero bytes read
}

func (x *xzFooterReader) Read(p []byte) (int, error) {
	n, err := x.r.Read(p)
	for _, b := range p[:n] {
		if b != 0 {
			x.last[0], x.last[1] = x.last[1], b
		}
	}
	if err == io.EOF && x.last != footerMagicXz {
		return n, io.ErrUnexpectedEOF
	}
	return n, err
}
