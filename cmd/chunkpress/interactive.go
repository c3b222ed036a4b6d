package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/dargueta/chunkpress"
	"github.com/dargueta/chunkpress/pipeline"
	"github.com/urfave/cli/v2"
)

const (
	choiceCompress   = "1"
	choiceDecompress = "2"
)

type interactiveAnswers struct {
	choice     string
	inputPath  string
	outputPath string
	workers    string
}

// promptAll asks every question before any of the answers is checked.
func promptAll(input io.Reader, output io.Writer) (interactiveAnswers, error) {
	scanner := bufio.NewScanner(input)
	scanner.Split(bufio.ScanWords)

	prompts := []string{
		"1. Compress File\n2. Decompress File\nEnter choice: ",
		"Enter input file name: ",
		"Enter output file name: ",
		"Enter number of threads: ",
	}
	answers := make([]string, len(prompts))

	for i, prompt := range prompts {
		fmt.Fprint(output, prompt)
		if !scanner.Scan() {
			err := scanner.Err()
			if err != nil {
				return interactiveAnswers{}, chunkpress.ErrIOFailed.Wrap(err)
			}
			return interactiveAnswers{}, chunkpress.ErrInvalidArgument.WithMessage(
				"input ended before all questions were answered")
		}
		answers[i] = scanner.Text()
	}

	return interactiveAnswers{
		choice:     answers[0],
		inputPath:  answers[1],
		outputPath: answers[2],
		workers:    answers[3],
	}, nil
}

func interactiveCommand(context *cli.Context) error {
	answers, err := promptAll(context.App.Reader, context.App.Writer)
	if err != nil {
		return err
	}

	var operation func(string, string, pipeline.Options) (pipeline.Stats, error)
	switch answers.choice {
	case choiceCompress:
		operation = pipeline.CompressFile
	case choiceDecompress:
		operation = pipeline.DecompressFile
	default:
		return chunkpress.ErrInvalidMode.WithMessage(
			fmt.Sprintf("invalid choice %q", answers.choice))
	}

	workers, err := strconv.Atoi(answers.workers)
	if err != nil {
		return chunkpress.ErrInvalidWorkerCount.WithMessage(
			fmt.Sprintf("%q is not an integer", answers.workers))
	}

	_, err = operation(
		answers.inputPath,
		answers.outputPath,
		pipeline.Options{Workers: workers, Logger: loggerFrom(context)},
	)
	return err
}
