// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

// Package rpm2cpio extracts the cpio archive payload of an rpm package.
//
// The package checks the rpm lead magic, searches the remaining bytes for the
// magic bytes of a known compression format and decompresses the payload from
// there. Neither the rpm headers nor the cpio archive are parsed.
//
// The payload formats are tried in a fixed priority order, not by offset: if
// the xz magic occurs anywhere after the lead, the payload is decompressed as
// xz, even if the two byte gzip magic occurs earlier.
//
// Configuration is done using the [Config], which is a configuration struct that
// can be used to set the decompressors, the logger, the telemetry hook and the
// maximum input and output size.
package rpm2cpio
