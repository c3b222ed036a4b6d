// Package status maps chunkpress errors to process exit codes and the
// messages shown to users.
//
// Every error kind gets its own exit code so scripts can tell "you passed a bad
// worker count" apart from "the file is corrupted" without parsing stderr.
package status

import (
	"errors"
	"fmt"

	"github.com/dargueta/chunkpress"
)

type Code int

var messagesByCode map[Code]string

const (
	ExitOK Code = iota
	ExitFailure
	ExitInvalidWorkerCount
	ExitIOFailure
	ExitMalformedInput
	ExitTruncatedContainer
)

// errorKinds is checked in order by [FromError]. A wrapped error can match more
// than one kind (e.g. a multi-worker failure), in which case the first wins.
var errorKinds = []struct {
	kind error
	code Code
}{
	{chunkpress.ErrInvalidWorkerCount, ExitInvalidWorkerCount},
	{chunkpress.ErrTruncatedContainer, ExitTruncatedContainer},
	{chunkpress.ErrMalformedInput, ExitMalformedInput},
	{chunkpress.ErrIOFailed, ExitIOFailure},
	{chunkpress.ErrInvalidMode, ExitFailure},
	{chunkpress.ErrInvalidArgument, ExitFailure},
}

func init() {
	messagesByCode = make(map[Code]string, 8)
	messagesByCode[ExitOK] = "Success"
	messagesByCode[ExitFailure] = "Invalid usage"
	messagesByCode[ExitInvalidWorkerCount] = "Invalid worker count"
	messagesByCode[ExitIOFailure] = "File error"
	messagesByCode[ExitMalformedInput] = "Corrupted compressed data"
	messagesByCode[ExitTruncatedContainer] = "Compressed file is truncated"
}

// StrError gives a short description of an exit code.
func StrError(code Code) string {
	message, ok := messagesByCode[code]
	if ok {
		return message
	}
	return fmt.Sprintf("exit code %d not recognized.", int(code))
}

// FromError gives the exit code a process should terminate with after `err`.
// nil maps to [ExitOK], and errors that aren't one of the kinds defined in the
// chunkpress package map to [ExitFailure].
func FromError(err error) Code {
	if err == nil {
		return ExitOK
	}
	for _, entry := range errorKinds {
		if errors.Is(err, entry.kind) {
			return entry.code
		}
	}
	return ExitFailure
}

// Message formats `err` for display, prefixed by the description of its exit
// code.
func Message(err error) string {
	if err == nil {
		return StrError(ExitOK)
	}
	return fmt.Sprintf("%s: %s", StrError(FromError(err)), err.Error())
}
