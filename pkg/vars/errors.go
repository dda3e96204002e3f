package vars

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName matches every *InvalidNameError via errors.Is.
	ErrInvalidName = errors.New("vars: invalid variable name")
	// ErrReservedName matches every *ReservedNameError via errors.Is.
	ErrReservedName = errors.New("vars: reserved variable name")
)

// InvalidNameError reports a name that is not identifier shaped.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("vars: invalid variable name %q", e.Name)
}

// Is lets errors.Is(err, ErrInvalidName) succeed.
func (e *InvalidNameError) Is(target error) bool {
	return target == ErrInvalidName
}

// ReservedNameError reports an attempt to assign the self reference or one of
// the names the template environment reserves for itself.
type ReservedNameError struct {
	Name string
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("vars: variable name %q is reserved", e.Name)
}

// Is lets errors.Is(err, ErrReservedName) succeed.
func (e *ReservedNameError) Is(target error) bool {
	return target == ErrReservedName
}
