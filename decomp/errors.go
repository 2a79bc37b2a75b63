package decomp

import "errors"

var (
	// ErrNilTree indicates a nil tree was supplied.
	ErrNilTree = errors.New("decomp: tree must be non-nil")
	// ErrBadMaxSize indicates a maximum unit size below 1.
	ErrBadMaxSize = errors.New("decomp: max size must be >= 1")
	// ErrNoCutFound indicates the cut search saw internal candidates but
	// selected none. This is an internal-consistency fault in the
	// traversal or cut-set bookkeeping, never a user error.
	ErrNoCutFound = errors.New("decomp: no cut found in non-leaf unit")
)
