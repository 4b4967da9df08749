package replace

import (
	"fmt"
	"strings"
)

// Policy decides what happens to a file already present at the target.
type Policy int

const (
	// NoClobber fails with EEXIST if the target exists. The new file is
	// committed with a hard link, so an existing target is never touched.
	NoClobber Policy = iota

	// Clobber replaces the target and its permissions.
	Clobber

	// ClobberSavingPerms replaces the target but keeps its permission bits.
	// A missing target gets the requested mode.
	ClobberSavingPerms
)

func (p Policy) String() string {
	switch p {
	case NoClobber:
		return "noclobber"
	case Clobber:
		return "clobber"
	case ClobberSavingPerms:
		return "saveperms"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

func (p Policy) valid() bool {
	return p == NoClobber || p == Clobber || p == ClobberSavingPerms
}

// ParsePolicy reads the names produced by [Policy.String].
func ParsePolicy(s string) (Policy, error) {
	for _, p := range []Policy{NoClobber, Clobber, ClobberSavingPerms} {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}
