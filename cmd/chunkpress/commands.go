package main

import (
	"fmt"
	"os"

	"github.com/dargueta/chunkpress"
	"github.com/dargueta/chunkpress/pipeline"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func requireArgs(context *cli.Context, names ...string) error {
	if context.NArg() != len(names) {
		return chunkpress.ErrInvalidArgument.WithMessage(
			fmt.Sprintf(
				"%s expects %d arguments (%v), got %d",
				context.Command.Name,
				len(names),
				names,
				context.NArg(),
			),
		)
	}
	return nil
}

func optionsFrom(context *cli.Context) pipeline.Options {
	return pipeline.Options{
		Workers:   context.Int("workers"),
		ChunkSize: context.Int("chunk-size"),
		Logger:    loggerFrom(context),
	}
}

func compressCommand(context *cli.Context) error {
	err := requireArgs(context, "INPUT_FILE", "OUTPUT_FILE")
	if err != nil {
		return err
	}

	stats, err := pipeline.CompressFile(
		context.Args().Get(0), context.Args().Get(1), optionsFrom(context))
	if err != nil {
		return err
	}

	reportPath := context.String("report")
	if reportPath == "" {
		return nil
	}
	return writeReportFile(reportPath, stats.ChunkStats, loggerFrom(context))
}

func decompressCommand(context *cli.Context) error {
	err := requireArgs(context, "INPUT_FILE", "OUTPUT_FILE")
	if err != nil {
		return err
	}

	_, err = pipeline.DecompressFile(
		context.Args().Get(0), context.Args().Get(1), optionsFrom(context))
	return err
}

func inspectCommand(context *cli.Context) error {
	err := requireArgs(context, "CONTAINER_FILE")
	if err != nil {
		return err
	}

	path := context.Args().First()
	file, err := os.Open(path)
	if err != nil {
		return chunkpress.ErrIOFailed.Wrap(err).WithMessage(
			fmt.Sprintf("failed to open %q for reading", path))
	}
	defer file.Close()

	stats, err := pipeline.Inspect(file)
	if err != nil {
		return err
	}
	return pipeline.WriteReport(context.App.Writer, stats)
}

func writeReportFile(path string, stats []pipeline.ChunkStat, logger *zap.Logger) error {
	file, err := os.OpenFile(
		path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, chunkpress.DefaultOutputMode)
	if err != nil {
		return chunkpress.ErrIOFailed.Wrap(err).WithMessage(
			fmt.Sprintf("failed to open report %q for writing", path))
	}

	err = pipeline.WriteReport(file, stats)
	closeErr := file.Close()
	if err == nil && closeErr != nil {
		err = chunkpress.ErrIOFailed.Wrap(closeErr)
	}
	if err != nil {
		return err
	}

	logger.Debug("report written", zap.String("path", path), zap.Int("chunks", len(stats)))
	return nil
}
