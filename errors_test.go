package chunkpress_test

import (
	"errors"
	"testing"

	"github.com/dargueta/chunkpress"
	"github.com/stretchr/testify/assert"
)

func TestCodecErrorWithMessage(t *testing.T) {
	newErr := chunkpress.ErrMalformedInput.WithMessage("asdfqwerty")
	assert.Equal(
		t, "Malformed run-length data: asdfqwerty", newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, chunkpress.ErrMalformedInput)
	assert.NotErrorIs(t, newErr, chunkpress.ErrTruncatedContainer)
}

func TestCodecErrorWrap(t *testing.T) {
	originalErr := errors.New("original error")
	newErr := chunkpress.ErrIOFailed.Wrap(originalErr)
	expectedMessage := "Input/output error: original error"

	assert.EqualValues(t, expectedMessage, newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, originalErr, "original error not set as parent")
	assert.ErrorIs(t, newErr, chunkpress.ErrIOFailed, "codec error not set as parent")
}

func TestCodecErrorWrapThenMessage(t *testing.T) {
	originalErr := errors.New("disk on fire")
	newErr := chunkpress.ErrIOFailed.Wrap(originalErr).WithMessage("reading chunk 3")

	assert.Equal(
		t,
		"Input/output error: disk on fire: reading chunk 3",
		newErr.Error(),
		"error message is wrong",
	)
	assert.ErrorIs(t, newErr, originalErr)
	assert.ErrorIs(t, newErr, chunkpress.ErrIOFailed)
}

func TestCodecErrorKindsAreDistinct(t *testing.T) {
	kinds := []error{
		chunkpress.ErrInvalidArgument,
		chunkpress.ErrInvalidMode,
		chunkpress.ErrInvalidWorkerCount,
		chunkpress.ErrIOFailed,
		chunkpress.ErrMalformedInput,
		chunkpress.ErrTruncatedContainer,
	}

	for i, kind := range kinds {
		for j, other := range kinds {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, kind, other, "%q must not match %q", kind, other)
		}
	}
}
