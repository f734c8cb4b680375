// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package rpm2cpio

import (
	"bytes"
	"fmt"
	"io"
)

// leadSize is the size of the RPM lead. Only the magic is checked, the
// remaining fields (version, type, arch, name, os, signature type) are skipped.
const leadSize = 96

// magicBytesRPM are the magic bytes at the start of every RPM package.
// reference: https://rpm-software-management.github.io/rpm/manual/format.html
var magicBytesRPM = []byte{0xED, 0xAB, 0xEE, 0xDB}

// IsRPM checks if lead starts with the RPM magic bytes. The length of lead is
// not validated, a truncated lead is accepted as long as the magic matches.
func IsRPM(lead []byte) bool {
	return bytes.HasPrefix(lead, magicBytesRPM)
}

// readLead reads up to leadSize bytes from r. If EOF, capture whatever was read.
func readLead(r io.Reader) ([]byte, error) {
	buf := make([]byte, leadSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("cannot read lead: %w", err)
	}
	return buf[:n], nil
}
