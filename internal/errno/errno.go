// Package errno turns the kernel's signed-return convention into typed
// error values.
//
// A raw system call returns one machine word. A negative word is the
// negated error number, anything else is the call's result (a byte count,
// a descriptor, ...). [FromReturn] applies that rule, and [Code] is the
// resulting error value.
package errno

import (
	"errors"
	"math"
	"strconv"

	"golang.org/x/sys/unix"
)

// Code is a non-zero kernel error number.
type Code uintptr

const (
	// Overflow is returned by [FromReturn] for the one negative word whose
	// negation is not representable.
	Overflow = Code(unix.EOVERFLOW)

	// IO is the generic input/output failure.
	IO = Code(unix.EIO)

	// Exist reports that a path is already taken.
	Exist = Code(unix.EEXIST)
)

// FromReturn translates a raw system call return word.
func FromReturn(m int) (uint, error) {
	if m < 0 {
		if m == math.MinInt {
			return 0, Overflow
		}

		return 0, Code(-m)
	}

	return uint(m), nil
}

// FromResult folds a (result, error) pair as returned by the
// [golang.org/x/sys/unix] wrappers back into the signed word and translates
// it with [FromReturn]. Errors that are not kernel error numbers are
// returned unchanged.
func FromResult(n int, err error) (uint, error) {
	if err == nil {
		return FromReturn(n)
	}

	var e unix.Errno
	if errors.As(err, &e) && e != 0 {
		return FromReturn(-int(e))
	}

	return 0, err
}

// Translate is [FromResult] for calls without a result.
func Translate(err error) error {
	_, err = FromResult(0, err)

	return err
}

// Name returns the symbolic name of the code, such as "ENOENT".
func (c Code) Name() (string, bool) {
	e, ok := lookup(c)
	if !ok || e.name == "" {
		return "", false
	}

	return e.name, true
}

// Message returns the system's description of the code, or an empty
// string if there is none.
func (c Code) Message() string {
	e, ok := lookup(c)
	if !ok {
		return ""
	}

	return e.message
}

func (c Code) Error() string {
	if msg := c.Message(); msg != "" {
		return msg
	}
	if name, ok := c.Name(); ok {
		return name
	}

	return "errno " + strconv.FormatUint(uint64(c), 10)
}

// Unwrap exposes the code as a [unix.Errno], so that errors.Is matches
// both the raw constants (unix.ENOENT) and the portable fs errors
// (fs.ErrNotExist).
func (c Code) Unwrap() error {
	return unix.Errno(c)
}
