//go:build linux && !amd64

package dirent

// kernelLayout matches the records written by [schema.Unix.Getdents].
const kernelLayout = typeInHeader
