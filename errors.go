package ramvfs

import (
	"errors"
	"fmt"
)

// Filesystem error taxonomy. Match with errors.Is.
var (
	ErrNotFound    = errors.New("no such file or directory")
	ErrNotDir      = errors.New("not a directory")
	ErrNotFile     = errors.New("not a file")
	ErrExist       = errors.New("name already exists")
	ErrInvalidName = errors.New("invalid name")
	ErrUnsupported = errors.New("operation not supported")

	ErrCapacityExceeded = errors.New("capacity exceeded")
	// The exhaustion conditions below stay distinguishable but all match
	// ErrCapacityExceeded.
	ErrPoolFull = fmt.Errorf("%w: node pool full", ErrCapacityExceeded)
	ErrDirFull  = fmt.Errorf("%w: directory full", ErrCapacityExceeded)
	ErrNoMemory = fmt.Errorf("%w: out of memory", ErrCapacityExceeded)
)

// FSError records a failed operation with the path or name it was applied to.
type FSError struct {
	Op   string
	Path string
	Err  error
}

func (e *FSError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FSError) Unwrap() error {
	return e.Err
}

// NewError wraps err with the operation and path that produced it
func NewError(op, path string, err error) error {
	return &FSError{Op: op, Path: path, Err: err}
}
