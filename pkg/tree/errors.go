package tree

import (
	"errors"
	"fmt"
)

var (
	ErrDanglingParent = errors.New("parent not found")
	ErrCyclicParent   = errors.New("cyclic parent reference")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrNodeNotFound   = errors.New("node not found")
)

// DanglingParentError is returned when a record references a parent key that
// no record in the list carries.
type DanglingParentError struct {
	Key    any
	Parent any
}

func (e *DanglingParentError) Error() string {
	return fmt.Sprintf("record %v references missing parent %v", e.Key, e.Parent)
}

func (e *DanglingParentError) Unwrap() error { return ErrDanglingParent }

// CycleError lists the keys that can not be reached from any root because
// their parent chain loops back on itself.
type CycleError struct {
	Keys []any
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("records %v are part of a parent cycle", e.Keys)
}

func (e *CycleError) Unwrap() error { return ErrCyclicParent }
