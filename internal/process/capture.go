package process

import (
	"bytes"
	"io"
	"unicode/utf8"
)

// captureBuffer keeps the first limit bytes written to it and discards the
// rest, remembering that it did.
type captureBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

// newCaptureBuffer sizes a buffer for maxChars decoded characters. No
// encoding uses more than utf8.UTFMax bytes per character, so the first
// maxChars characters always fit. A non-positive maxChars keeps everything.
func newCaptureBuffer(maxChars int) *captureBuffer {
	if maxChars <= 0 {
		return &captureBuffer{}
	}
	return &captureBuffer{limit: maxChars * utf8.UTFMax}
}

func (c *captureBuffer) Write(p []byte) (int, error) {
	if c.limit <= 0 {
		return c.buf.Write(p)
	}
	remaining := c.limit - c.buf.Len()
	if remaining <= 0 {
		if len(p) > 0 {
			c.truncated = true
		}
		return len(p), nil
	}
	if len(p) > remaining {
		c.truncated = true
		c.buf.Write(p[:remaining])
		return len(p), nil
	}
	return c.buf.Write(p)
}

// Bytes returns the captured prefix.
func (c *captureBuffer) Bytes() []byte {
	return c.buf.Bytes()
}

// Truncated reports whether any output was discarded.
func (c *captureBuffer) Truncated() bool {
	return c.truncated
}

var _ io.Writer = (*captureBuffer)(nil)
