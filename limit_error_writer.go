// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package rpm2cpio

import "io"

// limitErrorWriter caps the size of the cpio archive written to W. Bytes up
// to the limit are passed through, anything beyond fails with
// [ErrMaxOutputSizeExceeded]. A negative limit disables the check.
type limitErrorWriter struct {
	W io.Writer // destination of the cpio archive
	L int64     // maximum output size
	N int64     // bytes written so far
}

// Write passes p to W. If p does not fit into the remaining budget, the part
// that fits is written and [ErrMaxOutputSizeExceeded] is returned.
func (l *limitErrorWriter) Write(p []byte) (int, error) {
	if l.L < 0 {
		n, err := l.W.Write(p)
		l.N += int64(n)
		return n, err
	}

	remaining := l.L - l.N
	if remaining <= 0 {
		return 0, ErrMaxOutputSizeExceeded
	}

	exceeded := int64(len(p)) > remaining
	if exceeded {
		p = p[:remaining]
	}
	n, err := l.W.Write(p)
	l.N += int64(n)
	if err == nil && exceeded {
		err = ErrMaxOutputSizeExceeded
	}
	return n, err
}

// newLimitErrorWriter returns a limitErrorWriter that writes at most maxSize
// bytes to w.
func newLimitErrorWriter(w io.Writer, maxSize int64) *limitErrorWriter {
	return &limitErrorWriter{W: w, L: maxSize}
}
