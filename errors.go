// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package rpm2cpio

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAPackage is returned if the input does not start with the RPM lead magic.
	ErrNotAPackage = errors.New("the input is not a RPM package")

	// ErrPayloadNotFound is returned if no known compression magic is present after the lead.
	ErrPayloadNotFound = errors.New("could not find compressed cpio archive")

	// ErrDecompressionFailed is returned if the selected decompressor cannot decode the payload.
	ErrDecompressionFailed = errors.New("decompression failed")

	// ErrDecompressorUnavailable is returned if the selected decompressor cannot run
	// in this environment, e.g. the external unxz executable is not installed.
	ErrDecompressorUnavailable = errors.New("decompressor unavailable")

	// ErrMaxInputSizeExceeded is returned if the input exceeds the configured maximum.
	ErrMaxInputSizeExceeded = errors.New("maximum input size exceeded")

	// ErrMaxOutputSizeExceeded is returned if the decompressed payload exceeds the configured maximum.
	ErrMaxOutputSizeExceeded = errors.New("maximum output size exceeded")
)

// Error describes a failed conversion step. Kind is one of the sentinel errors
// of this package, Err the underlying cause (may be nil).
type Error struct {
	Op     string // step that failed, e.g. "lead" or "decompress"
	Kind   error  // sentinel error
	Format string // payload format, if one was selected
	Offset int    // payload offset relative to the end of the lead, -1 if unknown
	Err    error  // underlying cause
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Format != "" {
		msg = fmt.Sprintf("%s (%s payload at offset %d)", msg, e.Format, e.Offset)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the kind and the cause, so that [errors.Is] matches both.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// newError is a helper to create an [Error] without an associated payload.
func newError(op string, kind error, err error) *Error {
	return &Error{Op: op, Kind: kind, Offset: -1, Err: err}
}
