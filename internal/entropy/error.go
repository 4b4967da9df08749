package entropy

import "errors"

var (
	ErrUnavailable = errors.New("entropy source is not supported by the kernel")
	ErrNotReady    = errors.New("entropy source is not initialised yet")
)
