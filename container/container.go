// Package container reads and writes the on-disk format of a compressed file:
// a sequence of length-prefixed records, one per compressed chunk.
//
// Wire format:
//
//	repeat until EOF:
//	  length  = uint64 little-endian
//	  payload = length bytes
//
// There is no header, no record count and no chunk index. Record order is
// chunk order. An empty file is a valid container with no records.
package container

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/dargueta/chunkpress"
)

// LengthPrefixSize is the size of a record's length field, in bytes.
const LengthPrefixSize = 8

// maxInitialAllocation caps how much memory is reserved for a record before any
// of its payload has been read. It comfortably fits an encoded chunk of the
// default size.
const maxInitialAllocation = 4 * 1024 * 1024

// Writer appends records to an underlying stream.
type Writer struct {
	stream         io.Writer
	recordsWritten int
}

func NewWriter(stream io.Writer) *Writer {
	return &Writer{stream: stream}
}

// WriteRecord writes one record holding `payload`. The returned int64 gives the
// number of bytes written to the stream, prefix included.
func (w *Writer) WriteRecord(payload []byte) (int64, error) {
	var prefix [LengthPrefixSize]byte
	binary.LittleEndian.PutUint64(prefix[:], uint64(len(payload)))

	total, err := writeBytes(w.stream, prefix[:])
	if err == nil {
		var n int64
		n, err = writeBytes(w.stream, payload)
		total += n
	}
	if err != nil {
		return total, chunkpress.ErrIOFailed.Wrap(err).WithMessage(
			fmt.Sprintf("failed writing record %d", w.recordsWritten))
	}

	w.recordsWritten++
	return total, nil
}

// RecordsWritten gives the number of records successfully written so far.
func (w *Writer) RecordsWritten() int {
	return w.recordsWritten
}

// WriteRecords writes every record in `records` in order and returns the total
// number of bytes written.
func WriteRecords(stream io.Writer, records [][]byte) (int64, error) {
	writer := NewWriter(stream)
	total := int64(0)
	for _, record := range records {
		n, err := writer.WriteRecord(record)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Reader reads records back out of a stream, one at a time.
type Reader struct {
	stream      *bufio.Reader
	recordsRead int
	bytesRead   int64
}

func NewReader(stream io.Reader) *Reader {
	return &Reader{stream: bufio.NewReader(stream)}
}

// Next returns the payload of the next record.
//
// It returns io.EOF if and only if the stream ends exactly on a record
// boundary. If the stream ends partway through a length prefix or has fewer
// payload bytes than the prefix declares, it fails with
// [chunkpress.ErrTruncatedContainer].
func (r *Reader) Next() ([]byte, error) {
	var prefix [LengthPrefixSize]byte
	n, err := io.ReadFull(r.stream, prefix[:])
	r.bytesRead += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, chunkpress.ErrTruncatedContainer.WithMessage(
				fmt.Sprintf(
					"record %d at offset %d: got %d of %d length bytes",
					r.recordsRead,
					r.bytesRead-int64(n),
					n,
					LengthPrefixSize,
				),
			)
		}
		return nil, r.wrapReadError(err)
	}

	declaredLength := binary.LittleEndian.Uint64(prefix[:])
	if declaredLength > math.MaxInt64 {
		return nil, chunkpress.ErrTruncatedContainer.WithMessage(
			fmt.Sprintf(
				"record %d declares %d bytes, more than any stream can hold",
				r.recordsRead,
				declaredLength,
			),
		)
	}

	// A corrupted prefix could ask for exabytes, so past a point the buffer
	// only grows as data actually arrives.
	initialCapacity := declaredLength
	if initialCapacity > maxInitialAllocation {
		initialCapacity = maxInitialAllocation
	}
	payload := bytes.NewBuffer(make([]byte, 0, int(initialCapacity)))
	copied, err := io.CopyN(payload, r.stream, int64(declaredLength))
	r.bytesRead += copied
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, chunkpress.ErrTruncatedContainer.WithMessage(
				fmt.Sprintf(
					"record %d declares %d bytes but only %d remain",
					r.recordsRead,
					declaredLength,
					copied,
				),
			)
		}
		return nil, r.wrapReadError(err)
	}

	r.recordsRead++
	return payload.Bytes(), nil
}

// RecordsRead gives the number of complete records returned so far.
func (r *Reader) RecordsRead() int {
	return r.recordsRead
}

// BytesRead gives the number of bytes consumed from the stream so far.
func (r *Reader) BytesRead() int64 {
	return r.bytesRead
}

func (r *Reader) wrapReadError(err error) error {
	return chunkpress.ErrIOFailed.Wrap(err).WithMessage(
		fmt.Sprintf("failed reading record %d", r.recordsRead))
}

// ReadRecords reads records until the end of the stream and returns their
// payloads in order. An empty stream gives an empty (non-nil) slice.
func ReadRecords(stream io.Reader) ([][]byte, error) {
	reader := NewReader(stream)
	records := [][]byte{}
	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		} else if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if n != len(b) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}
