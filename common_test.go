// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package rpm2cpio_test

import (
	"bytes"
	"testing"

	"github.com/cavaliergopher/cpio"
	"github.com/dsnet/compress/bzip2"
	rpm2cpio "github.com/hashicorp/go-rpm2cpio"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// newLead returns a 96 byte rpm lead for a binary package named name.
func newLead(name string) []byte {
	lead := make([]byte, 96)
	copy(lead, []byte{0xED, 0xAB, 0xEE, 0xDB})
	lead[4] = 3 // major
	lead[5] = 0 // minor
	copy(lead[10:76], name)
	lead[79] = 1 // os
	lead[81] = 5 // signature type
	return lead
}

// newPackage concatenates a lead with the given sections.
func newPackage(sections ...[]byte) []byte {
	pkg := newLead("hello-1.0-1")
	for _, s := range sections {
		pkg = append(pkg, s...)
	}
	return pkg
}

// junk returns n filler bytes that contain none of the payload magic bytes.
func junk(n int) []byte {
	return bytes.Repeat([]byte{'h'}, n)
}

// detectFormat returns the name of the payload format found in data with all
// formats enabled, or an empty string.
func detectFormat(data []byte) string {
	f, _, ok := rpm2cpio.LocatePayload(data, rpm2cpio.NewConfig(rpm2cpio.WithExtendedFormats(true)).Formats())
	if !ok {
		return ""
	}
	return f.Name
}

// archiveFile is a file in a cpio test archive
type archiveFile struct {
	Name    string
	Content []byte
}

// packCpio creates a newc cpio archive with the given files.
func packCpio(t testing.TB, files []archiveFile) []byte {
	var buf bytes.Buffer
	w := cpio.NewWriter(&buf)
	for _, f := range files {
		hdr := &cpio.Header{
			Name: f.Name,
			Mode: 0100644, // regular file, rw-r--r--
			Size: int64(len(f.Content)),
		}
		if err := w.WriteHeader(hdr); err != nil {
			t.Fatalf("error writing cpio header: %v", err)
		}
		if _, err := w.Write(f.Content); err != nil {
			t.Fatalf("error writing cpio content: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("error closing cpio writer: %v", err)
	}
	return buf.Bytes()
}

// compressGzip compresses data with gzip algorithm.
func compressGzip(t testing.TB, data []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("error writing data to gzip writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("error closing gzip writer: %v", err)
	}
	return buf.Bytes()
}

// compressXz compresses data with xz algorithm.
func compressXz(t testing.TB, data []byte) []byte {
	// Create a new xz writer
	var buf bytes.Buffer

	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("error creating xz writer: %v", err)
	}

	_, err = w.Write(data)
	if err != nil {
		t.Fatalf("error writing data to xz writer: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("error closing xz writer: %v", err)
	}

	return buf.Bytes()
}

// compressZstd compresses data with zstandard algorithm.
func compressZstd(t testing.TB, data []byte) []byte {
	var buf bytes.Buffer

	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		t.Fatalf("error creating zstd writer: %v", err)
	}

	_, err = enc.Write(data)
	enc.Close()
	if err != nil {
		t.Fatalf("error writing data to zstd writer: %v", err)
	}

	return buf.Bytes()
}

// compressBzip2 compresses data with bzip2 algorithm.
func compressBzip2(t testing.TB, data []byte) []byte {
	// Create a new Bzip2 writer
	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{
		Level: bzip2.DefaultCompression,
	})
	if err != nil {
		t.Fatalf("error creating bzip2 writer: %v", err)
	}

	// Write the data to the Bzip2 writer
	if _, err := w.Write(data); err != nil {
		t.Fatalf("error writing data to bzip2 writer: %v", err)
	}

	// Close the Bzip2 writer
	if err := w.Close(); err != nil {
		t.Fatalf("error closing bzip2 writer: %v", err)
	}

	return buf.Bytes()
}
