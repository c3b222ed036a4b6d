package testing

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/dargueta/chunkpress/container"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// ErrWriterFull is returned by a writer from [NewFailingWriter] once its limit
// is reached.
var ErrWriterFull = errors.New("test writer refused to accept more data")

type failingWriter struct {
	remaining int
}

// NewFailingWriter returns a writer that accepts `limit` bytes and then fails
// every write with [ErrWriterFull]. A write that crosses the limit is
// partially accepted.
func NewFailingWriter(limit int) io.Writer {
	return &failingWriter{remaining: limit}
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) <= w.remaining {
		w.remaining -= len(p)
		return len(p), nil
	}

	n := w.remaining
	w.remaining = 0
	return n, ErrWriterFull
}

// BuildContainer serializes `records` into the container format and returns
// the raw bytes. It fails the test if serialization fails.
func BuildContainer(t *testing.T, records [][]byte) []byte {
	var buffer bytes.Buffer
	_, err := container.WriteRecords(&buffer, records)
	require.NoError(t, err, "failed to build container")
	return buffer.Bytes()
}

// LoadContainer takes a list of records and returns a seekable stream over
// their serialized container.
//
//   - Writes to the stream do not affect `records`.
//   - The stream's size is fixed; writing past the end is an error.
func LoadContainer(t *testing.T, records [][]byte) io.ReadWriteSeeker {
	return bytesextra.NewReadWriteSeeker(BuildContainer(t, records))
}

type untouchableReader struct {
	t *testing.T
}

// NewUntouchableReader returns a reader that fails the test if anything reads
// from it. Use it to prove an operation rejects its arguments before doing any
// I/O.
func NewUntouchableReader(t *testing.T) io.Reader {
	return untouchableReader{t: t}
}

func (r untouchableReader) Read(p []byte) (int, error) {
	r.t.Errorf("attempted to read %d bytes from a reader that must not be used", len(p))
	return 0, io.ErrUnexpectedEOF
}
