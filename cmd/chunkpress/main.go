package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/dargueta/chunkpress"
	"github.com/dargueta/chunkpress/chunks"
	"github.com/dargueta/chunkpress/status"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const loggerKey = "logger"

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line in `args` and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := newApp(stdin, stdout, stderr)
	err := app.Run(args)
	if err != nil {
		fmt.Fprintln(stderr, status.Message(err))
	}
	return int(status.FromError(err))
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	workersFlag := &cli.IntFlag{
		Name:    "workers",
		Aliases: []string{"w"},
		Usage:   "number of chunks processed in parallel; must be positive",
		Value:   runtime.NumCPU(),
		EnvVars: []string{"CHUNKPRESS_WORKERS"},
	}

	return &cli.App{
		Name:      "chunkpress",
		Usage:     "Compress files with parallel, chunked run-length encoding",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Metadata:  map[string]interface{}{},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every chunk as it's processed",
				EnvVars: []string{"CHUNKPRESS_VERBOSE"},
			},
		},
		Before: setUpLogger,
		After: func(context *cli.Context) error {
			// Syncing stderr fails on some platforms and there's nothing useful
			// to do about it.
			_ = loggerFrom(context).Sync()
			return nil
		},
		// Exit codes are decided by run(), never by the CLI library.
		ExitErrHandler:  func(*cli.Context, error) {},
		HideHelpCommand: true,
		Action:          unknownMode,
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Usage:     "Compress a file into a chunk container",
				ArgsUsage: "INPUT_FILE OUTPUT_FILE",
				Action:    compressCommand,
				Flags: []cli.Flag{
					workersFlag,
					&cli.IntFlag{
						Name:    "chunk-size",
						Usage:   "size of each chunk in bytes",
						Value:   chunks.DefaultChunkSize,
						EnvVars: []string{"CHUNKPRESS_CHUNK_SIZE"},
					},
					&cli.StringFlag{
						Name:      "report",
						Usage:     "write per-chunk sizes as CSV to `FILE`",
						TakesFile: true,
					},
				},
			},
			{
				Name:      "decompress",
				Usage:     "Expand a chunk container back into the original file",
				ArgsUsage: "INPUT_FILE OUTPUT_FILE",
				Action:    decompressCommand,
				Flags:     []cli.Flag{workersFlag},
			},
			{
				Name:      "inspect",
				Usage:     "Print the size of every chunk in a container as CSV",
				ArgsUsage: "CONTAINER_FILE",
				Action:    inspectCommand,
			},
			{
				Name:   "interactive",
				Usage:  "Prompt for the mode, files and worker count",
				Action: interactiveCommand,
			},
		},
	}
}

func setUpLogger(context *cli.Context) error {
	level := zapcore.InfoLevel
	if context.Bool("verbose") {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(context.App.ErrWriter),
		level,
	)
	context.App.Metadata[loggerKey] = zap.New(core)
	return nil
}

func loggerFrom(context *cli.Context) *zap.Logger {
	logger, ok := context.App.Metadata[loggerKey].(*zap.Logger)
	if !ok {
		return zap.NewNop()
	}
	return logger
}

func unknownMode(context *cli.Context) error {
	if !context.Args().Present() {
		_ = cli.ShowAppHelp(context)
		return chunkpress.ErrInvalidMode.WithMessage("no mode given")
	}
	return chunkpress.ErrInvalidMode.WithMessage(
		fmt.Sprintf(
			"%q is not one of: compress, decompress, inspect, interactive",
			context.Args().First(),
		),
	)
}
