package chunkpress

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CodecError is the error type returned by every package in this module. Each
// kind below is a sentinel; derived errors match it with [errors.Is].
type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type baseCodecError string

const rootError = baseCodecError("")

var ErrInvalidArgument = rootError.WithMessage("Invalid argument")
var ErrInvalidMode = rootError.WithMessage("Invalid mode")
var ErrInvalidWorkerCount = rootError.WithMessage("Worker count must be a positive integer")
var ErrIOFailed = rootError.WithMessage("Input/output error")
var ErrMalformedInput = rootError.WithMessage("Malformed run-length data")
var ErrTruncatedContainer = rootError.WithMessage("Container ends in the middle of a record")

func (e baseCodecError) Error() string {
	return string(e)
}

func (e baseCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       message,
		originalError: e,
	}
}

func (e baseCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCodecError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}
