// Package schema provides the structures and system call implementations
// shared by all other packages. Its [Unix] type is the single place where
// kernel calls are made; every error it returns is an [errno.Code], so
// consumers can match results against the raw error numbers.
package schema
