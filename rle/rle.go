package rle

import (
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/chunkpress"
)

// MaxRunLength is the largest count a single pair can hold.
const MaxRunLength = 255

// Encode run-length encodes `data` into a new slice of (byte, count) pairs.
// Empty input gives empty (non-nil) output.
func Encode(data []byte) []byte {
	output := make([]byte, 0, len(data))
	grouper := NewRunGrouper(data)

	for {
		run, err := grouper.GetNextRun()
		if errors.Is(err, io.EOF) {
			return output
		}

		for run.RunLength > 0 {
			count := run.RunLength
			if count > MaxRunLength {
				count = MaxRunLength
			}
			output = append(output, run.Byte, byte(count))
			run.RunLength -= count
		}
	}
}

// Decode expands a buffer of (byte, count) pairs back into the original data.
// A pair with a count of 0 contributes nothing.
//
// An encoded buffer with an odd length has a trailing byte with no count; this
// fails with [chunkpress.ErrMalformedInput].
func Decode(encoded []byte) ([]byte, error) {
	decodedSize, err := DecodedLen(encoded)
	if err != nil {
		return nil, err
	}

	output := make([]byte, decodedSize)
	position := 0
	for i := 0; i < len(encoded); i += 2 {
		value := encoded[i]
		end := position + int(encoded[i+1])
		for ; position < end; position++ {
			output[position] = value
		}
	}
	return output, nil
}

// DecodedLen returns the number of bytes `encoded` expands to, without
// expanding it.
func DecodedLen(encoded []byte) (int, error) {
	if len(encoded)%2 != 0 {
		return 0, chunkpress.ErrMalformedInput.WithMessage(
			fmt.Sprintf(
				"encoded length %d is odd; byte %#02x at offset %d has no repeat count",
				len(encoded),
				encoded[len(encoded)-1],
				len(encoded)-1,
			),
		)
	}

	total := 0
	for i := 1; i < len(encoded); i += 2 {
		total += int(encoded[i])
	}
	return total, nil
}
