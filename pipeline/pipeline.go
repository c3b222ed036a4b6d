// Package pipeline ties the chunkpress building blocks together into the two
// operations users actually run: compressing a stream into a container, and
// decompressing a container back into the original stream.
//
// Compression: segment the input into chunks, run-length encode every chunk in
// parallel, then write the encoded chunks as container records in chunk order.
// Decompression: read every record, decode them in parallel, then write the
// decoded chunks out in record order.
package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/chunkpress"
	"github.com/dargueta/chunkpress/chunks"
	"github.com/dargueta/chunkpress/container"
	"github.com/dargueta/chunkpress/parallel"
	"github.com/dargueta/chunkpress/rle"
	"go.uber.org/zap"
)

// Options controls a single compression or decompression run.
type Options struct {
	// Workers is the number of goroutines chunks are divided among. It must be
	// positive. Workers that would get no chunks aren't started.
	Workers int
	// ChunkSize is the size of the chunks the input is split into when
	// compressing, in bytes. 0 means [chunks.DefaultChunkSize]. It's ignored
	// when decompressing, since the container records already delimit chunks.
	ChunkSize int
	// Logger receives progress and summary messages. nil disables logging.
	Logger *zap.Logger
}

// Validate checks the options without touching any input or output.
func (options Options) Validate() error {
	if options.Workers <= 0 {
		return chunkpress.ErrInvalidWorkerCount.WithMessage(
			fmt.Sprintf("got %d", options.Workers))
	}
	if options.ChunkSize < 0 {
		return chunkpress.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("chunk size can't be negative, got %d", options.ChunkSize))
	}
	return nil
}

func (options Options) chunkSize() int {
	if options.ChunkSize == 0 {
		return chunks.DefaultChunkSize
	}
	return options.ChunkSize
}

func (options Options) logger() *zap.Logger {
	if options.Logger == nil {
		return zap.NewNop()
	}
	return options.Logger
}

// Stats summarizes a completed run.
type Stats struct {
	Workers      int
	Chunks       int
	BytesRead    int64
	BytesWritten int64
	// ChunkStats has one entry per chunk, in chunk order.
	ChunkStats []ChunkStat
}

// Compress reads `input` until EOF and writes its compressed container to
// `output`. The options are validated before anything is read.
func Compress(input io.Reader, output io.Writer, options Options) (Stats, error) {
	err := options.Validate()
	if err != nil {
		return Stats{}, err
	}
	logger := options.logger().With(zap.String("operation", "compress"))

	chunkList, err := chunks.Segment(input, options.chunkSize())
	if err != nil {
		return Stats{}, err
	}
	logger.Debug(
		"input segmented",
		zap.Int("chunks", len(chunkList)),
		zap.Int("chunk_size", options.chunkSize()),
	)

	progress := newProgressReporter(logger, len(chunkList))
	encoded, err := parallel.ExecuteWithWorkers(
		chunkList,
		options.Workers,
		func(index int, chunk []byte) ([]byte, error) {
			result := rle.Encode(chunk)
			progress.chunkDone(index, len(chunk), len(result))
			return result, nil
		},
	)
	if err != nil {
		return Stats{}, err
	}

	written, err := container.WriteRecords(output, encoded)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Workers:      options.Workers,
		Chunks:       len(chunkList),
		BytesRead:    int64(chunks.TotalSize(chunkList)),
		BytesWritten: written,
		ChunkStats:   make([]ChunkStat, len(chunkList)),
	}
	for i := range chunkList {
		stats.ChunkStats[i] = ChunkStat{
			Index:       i,
			RawSize:     len(chunkList[i]),
			EncodedSize: len(encoded[i]),
		}
	}

	logger.Info(
		fmt.Sprintf("Compression completed using %d workers.", options.Workers),
		zap.Int("chunks", stats.Chunks),
		zap.Int64("bytes_in", stats.BytesRead),
		zap.Int64("bytes_out", stats.BytesWritten),
	)
	return stats, nil
}

// Decompress reads a container from `input` and writes the original data to
// `output`. The options are validated before anything is read.
func Decompress(input io.Reader, output io.Writer, options Options) (Stats, error) {
	err := options.Validate()
	if err != nil {
		return Stats{}, err
	}
	logger := options.logger().With(zap.String("operation", "decompress"))

	reader := container.NewReader(input)
	records := [][]byte{}
	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return Stats{}, err
		}
		records = append(records, record)
	}
	logger.Debug("container read", zap.Int("records", len(records)))

	progress := newProgressReporter(logger, len(records))
	decoded, err := parallel.ExecuteWithWorkers(
		records,
		options.Workers,
		func(index int, record []byte) ([]byte, error) {
			result, err := rle.Decode(record)
			if err != nil {
				return nil, err
			}
			progress.chunkDone(index, len(result), len(record))
			return result, nil
		},
	)
	if err != nil {
		return Stats{}, err
	}

	written, err := chunks.Join(output, decoded)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Workers:      options.Workers,
		Chunks:       len(records),
		BytesRead:    reader.BytesRead(),
		BytesWritten: written,
		ChunkStats:   make([]ChunkStat, len(records)),
	}
	for i := range records {
		stats.ChunkStats[i] = ChunkStat{
			Index:       i,
			RawSize:     len(decoded[i]),
			EncodedSize: len(records[i]),
		}
	}

	logger.Info(
		fmt.Sprintf("Decompression completed using %d workers.", options.Workers),
		zap.Int("chunks", stats.Chunks),
		zap.Int64("bytes_in", stats.BytesRead),
		zap.Int64("bytes_out", stats.BytesWritten),
	)
	return stats, nil
}
