package replace

import "errors"

var ErrInvalidPolicy = errors.New("invalid clobber policy")
