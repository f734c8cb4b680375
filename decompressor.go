// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package rpm2cpio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

//go:generate mockgen -source=decompressor.go -destination=mock_decompressor_test.go -package=rpm2cpio_test

// Decompressor decompresses a payload. The payload handed to Decompress starts
// exactly at the magic bytes of its format. If the returned reader implements
// [io.Closer], it is closed once the output has been consumed.
type Decompressor interface {
	Decompress(ctx context.Context, src io.Reader) (io.Reader, error)
}

// decompressionFunc returns an io.Reader that decompresses src.
type decompressionFunc func(io.Reader) (io.Reader, error)

// streamDecompressor is a [Decompressor] backed by a library stream reader.
type streamDecompressor struct {
	fn decompressionFunc
}

// Decompress starts the decompression of src, unless ctx is already done.
func (s *streamDecompressor) Decompress(ctx context.Context, src io.Reader) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.fn(src)
}

// ExternalDecompressor is a [Decompressor] that pipes the payload through an
// external executable and reads the decompressed data from its stdout.
type ExternalDecompressor struct {
	// Command is the name or path of the executable, resolved with [exec.LookPath].
	Command string

	// Args are passed to the executable.
	Args []string
}

// NewExternalXz returns an [ExternalDecompressor] that runs `unxz`.
func NewExternalXz() *ExternalDecompressor {
	return &ExternalDecompressor{Command: "unxz"}
}

// Decompress starts the external command with src as stdin. If the command
// cannot be found, an error wrapping [ErrDecompressorUnavailable] is returned.
// A non-zero exit status is reported when the returned reader hits EOF or is closed.
func (e *ExternalDecompressor) Decompress(ctx context.Context, src io.Reader) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := exec.LookPath(e.Command)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompressorUnavailable, err)
	}

	cmd := exec.CommandContext(ctx, path, e.Args...)
	cmd.Stdin = src
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("cannot create stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: cannot start %s: %w", ErrDecompressorUnavailable, e.Command, err)
	}

	return &commandReader{name: e.Command, cmd: cmd, stdout: stdout, stderr: stderr}, nil
}

// commandReader reads the stdout of a running command and reaps the process
// once the output is drained or the reader is closed.
type commandReader struct {
	name    string
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	stderr  *bytes.Buffer
	waited  bool
	waitErr error
}

func (c *commandReader) Read(p []byte) (int, error) {
	n, err := c.stdout.Read(p)
	if err == io.EOF {
		if werr := c.wait(); werr != nil {
			return n, werr
		}
	}
	return n, err
}

// Close closes stdout, so a process blocked on writing exits, and waits for it.
func (c *commandReader) Close() error {
	if c.waited {
		return c.waitErr
	}
	c.stdout.Close()
	return c.wait()
}

func (c *commandReader) wait() error {
	if c.waited {
		return c.waitErr
	}
	c.waited = true
	if err := c.cmd.Wait(); err != nil {
		if msg := strings.TrimSpace(c.stderr.String()); len(msg) > 0 {
			c.waitErr = fmt.Errorf("%s: %w: %s", c.name, err, msg)
		} else {
			c.waitErr = fmt.Errorf("%s: %w", c.name, err)
		}
	}
	return c.waitErr
}
