package tree

import (
	"reflect"

	"nodeforest/pkg/models"
)

// Unique returns the first occurrence of every value in list, keeping order.
func Unique[T comparable](list []T) []T {
	seen := make(map[T]struct{}, len(list))
	out := make([]T, 0, len(list))
	for _, v := range list {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// UniqueValues is Unique for heterogeneous lists. Values are bucketed by
// dynamic type, so 1 and "1" stay distinct. Slices, maps and funcs can not be
// compared by value and are compared by reference instead.
func UniqueValues(list []any) []any {
	seen := make(map[any]struct{}, len(list))
	out := make([]any, 0, len(list))
	for _, v := range list {
		k := identityKey(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}

type refKey struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

func identityKey(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		return refKey{typ: rv.Type(), ptr: rv.Pointer(), n: rv.Len()}
	case reflect.Map, reflect.Func:
		return refKey{typ: rv.Type(), ptr: rv.Pointer()}
	}
	if !rv.Type().Comparable() {
		// structs or arrays holding slices/maps: fall back to the boxed address
		return refKey{typ: rv.Type(), ptr: reflect.ValueOf(&v).Pointer()}
	}
	return v
}

// IndexOf returns the position of the first element whose key equals value,
// or -1.
func IndexOf[T any, K comparable](list []T, value K, key func(T) K) int {
	for i, item := range list {
		if key(item) == value {
			return i
		}
	}
	return -1
}

// ReplaceByValue returns a copy of list with the first element whose key
// equals value replaced by item. When nothing matches the copy is returned
// unchanged.
func ReplaceByValue[T any, K comparable](list []T, item T, value K, key func(T) K) []T {
	out := make([]T, len(list))
	copy(out, list)
	if i := IndexOf(list, value, key); i >= 0 {
		out[i] = item
	}
	return out
}

// AppendRecord returns a copy of list with item appended.
func AppendRecord[T any](list []T, item T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, item)
}

// NodeKey is the default key of a node record.
func NodeKey(n *models.Node) int {
	if n == nil {
		return 0
	}
	return n.ID
}

func IndexByID(list []*models.Node, id int) int {
	return IndexOf(list, id, NodeKey)
}

func ReplaceByID(list []*models.Node, item *models.Node, id int) []*models.Node {
	return ReplaceByValue(list, item, id, NodeKey)
}
