package rle

import "io"

// ByteRun represents a single run of a particular byte value.
type ByteRun struct {
	// Byte is the byte value for this run.
	Byte byte
	// RunLength gives the number of times the byte occurs in the run (not the
	// number of times it's repeated).
	//
	// A valid run will always have this be 1 or greater. A value less than 1
	// indicates the end of the data was reached.
	RunLength int
}

// InvalidRun is returned by [RunGrouper.GetNextRun] along with io.EOF once the
// data is exhausted.
var InvalidRun = ByteRun{}

// RunGrouper splits a byte slice into maximal runs of identical bytes. Run
// lengths are not capped; splitting runs to fit in a count byte is the
// encoder's job.
type RunGrouper struct {
	data   []byte
	offset int
}

func NewRunGrouper(data []byte) *RunGrouper {
	return &RunGrouper{data: data}
}

// GetNextRun returns a [ByteRun] for the next byte or run of byte values in the
// data. Once all data has been consumed it returns [InvalidRun] and io.EOF.
func (grouper *RunGrouper) GetNextRun() (ByteRun, error) {
	if grouper.offset >= len(grouper.data) {
		return InvalidRun, io.EOF
	}

	firstByte := grouper.data[grouper.offset]
	end := grouper.offset + 1
	for end < len(grouper.data) && grouper.data[end] == firstByte {
		end++
	}

	run := ByteRun{Byte: firstByte, RunLength: end - grouper.offset}
	grouper.offset = end
	return run, nil
}
