// Package chunks splits a byte stream into fixed-size chunks and puts it back
// together.
//
// A chunk's index is its position in the returned slice. Nothing else records
// it, so every consumer must preserve slice order.
package chunks

import (
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/chunkpress"
	"github.com/noxer/bytewriter"
)

// DefaultChunkSize is the size of every chunk but the last, in bytes.
const DefaultChunkSize = 1024 * 1024

// Segment reads `input` until EOF and splits it into chunks of exactly
// `chunkSize` bytes. If the size of the input isn't a multiple of `chunkSize`,
// the last chunk is shorter. Empty input returns an empty (non-nil) slice.
func Segment(input io.Reader, chunkSize int) ([][]byte, error) {
	if chunkSize <= 0 {
		return nil, chunkpress.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("chunk size must be positive, got %d", chunkSize))
	}

	chunkList := [][]byte{}
	for {
		buffer := make([]byte, chunkSize)
		n, err := io.ReadFull(input, buffer)
		if n > 0 {
			chunkList = append(chunkList, buffer[:n])
		}

		if err == nil {
			continue
		}
		// ReadFull returns EOF only if nothing was read, and ErrUnexpectedEOF
		// if it got a partial chunk. Either way the input is exhausted.
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return chunkList, nil
		}
		return nil, chunkpress.ErrIOFailed.Wrap(err).WithMessage(
			fmt.Sprintf("failed reading chunk %d", len(chunkList)))
	}
}

// Join writes `chunkList` to `output` in order. The returned int64 gives the
// number of bytes written, including when an error occurs.
func Join(output io.Writer, chunkList [][]byte) (int64, error) {
	total := int64(0)
	for i, chunk := range chunkList {
		n, err := output.Write(chunk)
		total += int64(n)
		if err == nil && n != len(chunk) {
			err = io.ErrShortWrite
		}
		if err != nil {
			return total, chunkpress.ErrIOFailed.Wrap(err).WithMessage(
				fmt.Sprintf("failed writing chunk %d", i))
		}
	}
	return total, nil
}

// JoinBytes concatenates `chunkList` into a single new slice.
func JoinBytes(chunkList [][]byte) []byte {
	output := make([]byte, TotalSize(chunkList))

	// The buffer is exactly the right size, so this can't fail.
	_, _ = Join(bytewriter.New(output), chunkList)
	return output
}

// TotalSize gives the combined length of all chunks in bytes.
func TotalSize(chunkList [][]byte) int {
	total := 0
	for _, chunk := range chunkList {
		total += len(chunk)
	}
	return total
}
