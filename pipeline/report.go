package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/chunkpress"
	"github.com/dargueta/chunkpress/container"
	"github.com/dargueta/chunkpress/rle"
	"github.com/gocarina/gocsv"
)

// ChunkStat describes a single chunk: its position, its size before encoding
// and the size of its encoded record payload.
type ChunkStat struct {
	Index       int `csv:"index"`
	RawSize     int `csv:"raw_size"`
	EncodedSize int `csv:"encoded_size"`
}

// WriteReport writes one CSV row per chunk to `output`, preceded by a header
// row.
func WriteReport(output io.Writer, stats []ChunkStat) error {
	if stats == nil {
		stats = []ChunkStat{}
	}
	err := gocsv.Marshal(&stats, output)
	if err != nil {
		return chunkpress.ErrIOFailed.Wrap(err)
	}
	return nil
}

// ReadReport parses a report written by [WriteReport].
func ReadReport(input io.Reader) ([]ChunkStat, error) {
	stats := []ChunkStat{}
	err := gocsv.Unmarshal(input, &stats)
	if err != nil {
		return nil, chunkpress.ErrInvalidArgument.Wrap(err)
	}
	return stats, nil
}

// Inspect reads a container and describes every record in it without
// expanding any of them. It fails the same way decompression would on a
// truncated container or a malformed record.
func Inspect(input io.Reader) ([]ChunkStat, error) {
	reader := container.NewReader(input)
	stats := []ChunkStat{}

	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		} else if err != nil {
			return nil, err
		}

		rawSize, err := rle.DecodedLen(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(stats), err)
		}
		stats = append(stats, ChunkStat{
			Index:       len(stats),
			RawSize:     rawSize,
			EncodedSize: len(record),
		})
	}
}
