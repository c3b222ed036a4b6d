package chunkpress

import "os"

const (
	S_IROTH = 0o004
	S_IRGRP = 0o040
	S_IWUSR = 0o200
	S_IRUSR = 0o400
)

// DefaultOutputMode is the permission set given to files created for
// compressed or decompressed output (rw-r--r--), before the umask.
const DefaultOutputMode os.FileMode = S_IRUSR | S_IWUSR | S_IRGRP | S_IROTH
