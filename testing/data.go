// Package testing contains helpers shared by the tests of all chunkpress
// packages.
package testing

import (
	"crypto/rand"
	mathrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateRandomData returns `size` bytes of random data. It is guaranteed to
// either return a valid slice or fail the test and abort.
//
// Random data has almost no runs, so it's the worst case for run-length
// encoding: expect the encoded form to be twice as large.
func CreateRandomData(t *testing.T, size int) []byte {
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to initialize %d bytes with random data", size)
	return data
}

// CreateRunData returns `size` bytes made of runs of random bytes, with run
// lengths anywhere from 1 to `maxRunLength`. The output depends only on the
// arguments, so failures are reproducible.
//
// Use a `maxRunLength` above 255 to make sure runs get split during encoding.
func CreateRunData(t *testing.T, seed int64, size, maxRunLength int) []byte {
	require.Greater(t, maxRunLength, 0, "max run length must be positive")

	generator := mathrand.New(mathrand.NewSource(seed))
	data := make([]byte, 0, size)
	for len(data) < size {
		value := byte(generator.Intn(256))
		runLength := generator.Intn(maxRunLength) + 1
		for i := 0; i < runLength && len(data) < size; i++ {
			data = append(data, value)
		}
	}
	return data
}
