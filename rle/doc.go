// Package rle implements the byte-pair run-length encoding used for every
// chunk of a chunkpress container.
//
// The scheme is the simplest one there is: each maximal run of a byte B is
// written as B followed by an unsigned count byte. A count can't exceed 255,
// so longer runs are split. For example, 300 "X" bytes become `X 255 X 45`,
// and
//
//	aaaabbbcc
//	a 4 b 3 c 2
//
// Unlike RLE8 there is no escape sequence, so data with no repetition at all
// doubles in size. The upside is that a valid encoded buffer is always an even
// number of bytes and can be decoded pair by pair without any lookbehind,
// which is what lets every chunk be decoded on its own.
//
// Runs never cross a buffer boundary. Encoding two buffers separately and
// concatenating the results is *not* the same as encoding their
// concatenation, and callers rely on that: each chunk is encoded
// independently of its neighbors.

package rle
