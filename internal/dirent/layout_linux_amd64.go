package dirent

// kernelLayout matches the records written by [schema.Unix.Getdents].
const kernelLayout = typeTrailing
