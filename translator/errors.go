package translator

import (
	"errors"
)

const packageName = `translator`

type (
	// InvocationError is returned when the command wrote anything to stderr.
	// The exit code is not considered.
	InvocationError struct {
		Command string
		Stderr  string
	}
)

var (
	ErrInvalidOption   = errors.New(packageName + `: invalid option`)
	ErrCommandRequired = errors.New(packageName + `: command required`)
)

// Error returns the decoded stderr text, unmodified.
func (x *InvocationError) Error() string {
	return x.Stderr
}
