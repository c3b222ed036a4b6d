package pipeline_test

import (
	"bytes"
	"testing"

	"github.com/dargueta/chunkpress"
	"github.com/dargueta/chunkpress/container"
	"github.com/dargueta/chunkpress/pipeline"
	"github.com/dargueta/chunkpress/rle"
	cptest "github.com/dargueta/chunkpress/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type roundTripTestData struct {
	Name string
	Data []byte
}

func compressToBytes(t *testing.T, data []byte, options pipeline.Options) []byte {
	var buffer bytes.Buffer
	stats, err := pipeline.Compress(bytes.NewReader(data), &buffer, options)
	require.NoError(t, err, "unexpected error while compressing")
	assert.EqualValues(t, len(data), stats.BytesRead, "wrong input size")
	assert.EqualValues(t, buffer.Len(), stats.BytesWritten, "wrong output size")
	return buffer.Bytes()
}

func decompressToBytes(t *testing.T, data []byte, options pipeline.Options) []byte {
	var buffer bytes.Buffer
	stats, err := pipeline.Decompress(bytes.NewReader(data), &buffer, options)
	require.NoError(t, err, "unexpected error while decompressing")
	assert.EqualValues(t, len(data), stats.BytesRead, "wrong input size")
	assert.EqualValues(t, buffer.Len(), stats.BytesWritten, "wrong output size")
	return buffer.Bytes()
}

func TestRoundTrip__WorkerCountsDontMatter(t *testing.T) {
	testData := []roundTripTestData{
		{"empty", []byte{}},
		{"homogenous", bytes.Repeat([]byte{100}, 9174)},
		{"heterogenous", cptest.CreateRandomData(t, 1190)},
		{"runs", cptest.CreateRunData(t, 7, 20000, 700)},
	}
	workerCounts := []int{1, 2, 3, 8, 64}

	for _, data := range testData {
		data := data
		t.Run(data.Name, func(t *testing.T) {
			for _, compressWorkers := range workerCounts {
				compressed := compressToBytes(
					t, data.Data, pipeline.Options{Workers: compressWorkers, ChunkSize: 1000})

				for _, decompressWorkers := range workerCounts {
					decompressed := decompressToBytes(
						t, compressed, pipeline.Options{Workers: decompressWorkers})
					assert.True(
						t,
						bytes.Equal(data.Data, decompressed),
						"round trip failed: %d compress workers, %d decompress workers",
						compressWorkers,
						decompressWorkers,
					)
				}
			}
		})
	}
}

func TestCompress__OutputIndependentOfWorkerCount(t *testing.T) {
	data := cptest.CreateRunData(t, 99, 50000, 400)
	expected := compressToBytes(t, data, pipeline.Options{Workers: 1, ChunkSize: 4096})

	for _, workers := range []int{2, 5, 13, 100} {
		actual := compressToBytes(t, data, pipeline.Options{Workers: workers, ChunkSize: 4096})
		assert.True(t, bytes.Equal(expected, actual), "%d workers changed the output", workers)
	}
}

func TestCompress__Example(t *testing.T) {
	data := []byte("aaaabbbccccccccccccccccccccccccccccccccc")
	require.Len(t, data, 40)

	compressed := compressToBytes(t, data, pipeline.Options{Workers: 4})
	records, err := container.ReadRecords(bytes.NewReader(compressed))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []byte{'a', 4, 'b', 3, 'c', 33}, records[0])

	assert.Equal(t, data, decompressToBytes(t, compressed, pipeline.Options{Workers: 4}))
}

// Encoding a chunk by itself must give exactly the record the full pipeline
// produced for it.
func TestCompress__ChunksAreIndependent(t *testing.T) {
	const chunkSize = 300
	data := bytes.Repeat([]byte{7}, chunkSize*3+10)

	compressed := compressToBytes(t, data, pipeline.Options{Workers: 2, ChunkSize: chunkSize})
	records, err := container.ReadRecords(bytes.NewReader(compressed))
	require.NoError(t, err)
	require.Len(t, records, 4)

	for i, record := range records {
		end := (i + 1) * chunkSize
		if end > len(data) {
			end = len(data)
		}
		assert.Equal(t, rle.Encode(data[i*chunkSize:end]), record, "record %d", i)
	}
	// The run spans all chunks but each record restarts it.
	assert.Equal(t, []byte{7, 255, 7, 45}, records[0])
	assert.Equal(t, []byte{7, 10}, records[3])
}

func TestCompress__EmptyInputGivesEmptyContainer(t *testing.T) {
	compressed := compressToBytes(t, []byte{}, pipeline.Options{Workers: 3})
	assert.Empty(t, compressed)

	decompressed := decompressToBytes(t, []byte{}, pipeline.Options{Workers: 3})
	assert.Empty(t, decompressed)
}

func TestCompress__Stats(t *testing.T) {
	data := append(bytes.Repeat([]byte{1}, 10), bytes.Repeat([]byte{2}, 5)...)

	var buffer bytes.Buffer
	stats, err := pipeline.Compress(
		bytes.NewReader(data), &buffer, pipeline.Options{Workers: 2, ChunkSize: 8})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Workers)
	assert.Equal(t, 2, stats.Chunks)
	assert.Equal(
		t,
		[]pipeline.ChunkStat{
			{Index: 0, RawSize: 8, EncodedSize: 2},
			{Index: 1, RawSize: 7, EncodedSize: 4},
		},
		stats.ChunkStats,
	)
}

func TestOptions__InvalidWorkerCount(t *testing.T) {
	for _, workers := range []int{0, -1} {
		options := pipeline.Options{Workers: workers}
		assert.ErrorIs(t, options.Validate(), chunkpress.ErrInvalidWorkerCount)

		// No I/O may happen: a reader that fails the test on use proves it.
		_, err := pipeline.Compress(cptest.NewUntouchableReader(t), &bytes.Buffer{}, options)
		assert.ErrorIs(t, err, chunkpress.ErrInvalidWorkerCount)

		_, err = pipeline.Decompress(cptest.NewUntouchableReader(t), &bytes.Buffer{}, options)
		assert.ErrorIs(t, err, chunkpress.ErrInvalidWorkerCount)
	}
}

func TestOptions__NegativeChunkSize(t *testing.T) {
	err := pipeline.Options{Workers: 1, ChunkSize: -5}.Validate()
	assert.ErrorIs(t, err, chunkpress.ErrInvalidArgument)
}

func TestDecompress__MalformedRecord(t *testing.T) {
	raw := cptest.BuildContainer(t, [][]byte{{'a', 2}, {'b', 1, 'c'}, {'d', 3}})

	var output bytes.Buffer
	_, err := pipeline.Decompress(bytes.NewReader(raw), &output, pipeline.Options{Workers: 2})
	assert.ErrorIs(t, err, chunkpress.ErrMalformedInput)
	assert.Contains(t, err.Error(), "item 1")
	assert.Equal(t, 0, output.Len(), "nothing may be written when a record is malformed")
}

func TestDecompress__TruncatedContainer(t *testing.T) {
	raw := cptest.BuildContainer(t, [][]byte{{'a', 2}, {'b', 1}})

	_, err := pipeline.Decompress(
		bytes.NewReader(raw[:len(raw)-1]), &bytes.Buffer{}, pipeline.Options{Workers: 2})
	assert.ErrorIs(t, err, chunkpress.ErrTruncatedContainer)
}

func TestCompress__WriteError(t *testing.T) {
	data := cptest.CreateRandomData(t, 100)
	_, err := pipeline.Compress(
		bytes.NewReader(data), cptest.NewFailingWriter(50), pipeline.Options{Workers: 2})
	assert.ErrorIs(t, err, chunkpress.ErrIOFailed)
}

// Progress reporting from many workers at once must be race-free; run with
// -race to make this meaningful.
func TestCompress__DebugLogging(t *testing.T) {
	logger := zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel))
	data := cptest.CreateRunData(t, 3, 10000, 50)

	var buffer bytes.Buffer
	_, err := pipeline.Compress(
		bytes.NewReader(data),
		&buffer,
		pipeline.Options{Workers: 6, ChunkSize: 100, Logger: logger},
	)
	require.NoError(t, err)

	decompressed := decompressToBytes(
		t, buffer.Bytes(), pipeline.Options{Workers: 6, Logger: logger})
	assert.Equal(t, data, decompressed)
}
