// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package rpm2cpio

import (
	"io"

	"github.com/dsnet/compress/bzip2"
)

// FormatBzip2 is the name of the bzip2 payload format.
const FormatBzip2 = "bzip2"

// magicBytesBzip2 are the magic bytes for bzip2 compressed files
// reference: https://en.wikipedia.org/wiki/Bzip2 // https://github.com/dsnet/compress/blob/master/doc/bzip2-format.pdf
var magicBytesBzip2 = [][]byte{
	[]byte("BZh1"),
	[]byte("BZh2"),
	[]byte("BZh3"),
	[]byte("BZh4"),
	[]byte("BZh5"),
	[]byte("BZh6"),
	[]byte("BZh7"),
	[]byte("BZh8"),
	[]byte("BZh9"),
}

func decompressBzip2Stream(src io.Reader) (io.Reader, error) {
	return bzip2.NewReader(src, nil)
}
