// Package tree converts between flat parent-referencing record lists and
// nested forests, and derives new immutable forests from existing ones.
//
// Forests returned by this package are never mutated afterwards. Operations
// copy the path from a root down to the node they change and share every
// other subtree with the input forest.
package tree

import (
	"fmt"

	"nodeforest/pkg/models"
)

// Schema tells Treeify how to read a record type. Children must return a
// pointer into the record returned by Clone, so T is expected to be a
// reference type.
type Schema[T any, K comparable] struct {
	Key      func(T) K
	Parent   func(T) K
	Children func(T) *[]T
	Clone    func(T) T
	IsRoot   func(parent K) bool
}

// NodeSchema reads models.Node records: key ID, parent ParentID, children
// Children. Records are deep copied.
var NodeSchema = Schema[*models.Node, int]{
	Key:      NodeKey,
	Parent:   func(n *models.Node) int { return n.ParentID },
	Children: func(n *models.Node) *[]*models.Node { return &n.Children },
	Clone:    (*models.Node).Clone,
	IsRoot:   models.IsEmptyRef,
}

// Build turns a flat list of nodes into a forest.
func Build(list []*models.Node) ([]*models.Node, error) {
	return Treeify(list, NodeSchema)
}

// Treeify converts a flat list of records into a forest. Roots keep their
// input order, and so do the children of every parent. The input list and
// its records are left untouched.
func Treeify[T any, K comparable](list []T, schema Schema[T, K]) ([]T, error) {
	clones := make([]T, len(list))
	lookup := make(map[K]T, len(list))
	for i, rec := range list {
		c := schema.Clone(rec)
		*schema.Children(c) = make([]T, 0)
		key := schema.Key(c)
		if _, dup := lookup[key]; dup {
			return nil, &duplicateKeyError{key: key}
		}
		lookup[key] = c
		clones[i] = c
	}

	roots := make([]T, 0)
	for _, c := range clones {
		parent := schema.Parent(c)
		if schema.IsRoot(parent) {
			roots = append(roots, c)
			continue
		}
		p, ok := lookup[parent]
		if !ok {
			return nil, &DanglingParentError{Key: schema.Key(c), Parent: parent}
		}
		children := schema.Children(p)
		*children = append(*children, c)
	}

	if err := checkReachable(roots, clones, schema); err != nil {
		return nil, err
	}
	return roots, nil
}

// checkReachable reports every record that hangs off a parent cycle and can
// therefore not be reached from a root.
func checkReachable[T any, K comparable](roots, all []T, schema Schema[T, K]) error {
	reached := make(map[K]struct{}, len(all))
	stack := append([]T(nil), roots...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		reached[schema.Key(n)] = struct{}{}
		stack = append(stack, *schema.Children(n)...)
	}
	if len(reached) == len(all) {
		return nil
	}
	var lost []any
	for _, c := range all {
		if _, ok := reached[schema.Key(c)]; !ok {
			lost = append(lost, schema.Key(c))
		}
	}
	return &CycleError{Keys: lost}
}

type duplicateKeyError struct {
	key any
}

func (e *duplicateKeyError) Error() string {
	return fmt.Sprintf("record key %v appears more than once", e.key)
}

func (e *duplicateKeyError) Unwrap() error { return ErrDuplicateKey }
