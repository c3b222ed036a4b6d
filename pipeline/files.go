package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dargueta/chunkpress"
	"go.uber.org/zap"
)

type streamOperation func(input io.Reader, output io.Writer, options Options) (Stats, error)

// CompressFile compresses the file at `inputPath` into a new container at
// `outputPath`, replacing it if it exists.
//
// The options are validated and both files are opened before any data is
// processed, so bad arguments never leave a half-written output behind. If
// compression itself fails, the output file is removed.
func CompressFile(inputPath, outputPath string, options Options) (Stats, error) {
	return runOnFiles(Compress, inputPath, outputPath, options)
}

// DecompressFile expands the container at `inputPath` into `outputPath`. It
// behaves like [CompressFile] with respect to validation and cleanup.
func DecompressFile(inputPath, outputPath string, options Options) (Stats, error) {
	return runOnFiles(Decompress, inputPath, outputPath, options)
}

func runOnFiles(
	operation streamOperation,
	inputPath string,
	outputPath string,
	options Options,
) (Stats, error) {
	err := options.Validate()
	if err != nil {
		return Stats{}, err
	}
	logger := options.logger()

	inputFile, err := os.Open(inputPath)
	if err != nil {
		return Stats{}, chunkpress.ErrIOFailed.Wrap(err).WithMessage(
			fmt.Sprintf("failed to open %q for reading", inputPath))
	}
	defer inputFile.Close()

	// Opening the output truncates it, which would destroy the input if
	// they're the same file.
	inputInfo, err := inputFile.Stat()
	if err != nil {
		return Stats{}, chunkpress.ErrIOFailed.Wrap(err).WithMessage(
			fmt.Sprintf("failed to stat %q", inputPath))
	}
	outputInfo, err := os.Stat(outputPath)
	if err == nil && os.SameFile(inputInfo, outputInfo) {
		return Stats{}, chunkpress.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("input and output are the same file: %q", outputPath))
	}

	outputFile, err := os.OpenFile(
		outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, chunkpress.DefaultOutputMode)
	if err != nil {
		return Stats{}, chunkpress.ErrIOFailed.Wrap(err).WithMessage(
			fmt.Sprintf("failed to open %q for writing", outputPath))
	}

	writer := bufio.NewWriter(outputFile)
	stats, err := operation(bufio.NewReader(inputFile), writer, options)
	if err == nil {
		err = flushAndClose(writer, outputFile)
	} else {
		outputFile.Close()
	}

	if err != nil {
		removeErr := os.Remove(outputPath)
		if removeErr != nil {
			logger.Warn(
				"failed to remove incomplete output file",
				zap.String("path", outputPath),
				zap.Error(removeErr),
			)
		}
		return Stats{}, err
	}
	return stats, nil
}

func flushAndClose(writer *bufio.Writer, file *os.File) error {
	err := writer.Flush()
	if err != nil {
		file.Close()
		return chunkpress.ErrIOFailed.Wrap(err).WithMessage(
			fmt.Sprintf("failed to flush %q", file.Name()))
	}

	err = file.Close()
	if err != nil {
		return chunkpress.ErrIOFailed.Wrap(err).WithMessage(
			fmt.Sprintf("failed to close %q", file.Name()))
	}
	return nil
}
