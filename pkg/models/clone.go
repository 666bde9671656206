package models

import (
	"encoding/json"
	"reflect"
)

// Clone deep copies the node and its whole subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		ID:       n.ID,
		ParentID: n.ParentID,
		Content:  n.Content,
		State:    n.State.Clone(),
	}
	if n.Extra != nil {
		out.Extra = make(map[string]string, len(n.Extra))
		for k, v := range n.Extra {
			out.Extra[k] = v
		}
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = child.Clone()
		}
	}
	return out
}

// ShallowCopy copies the node struct. Children, Extra and Props are shared
// with the original.
func (n *Node) ShallowCopy() *Node {
	if n == nil {
		return nil
	}
	out := *n
	return &out
}

func cloneMap(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue deep copies JSON-like values. Anything else is returned as is.
func cloneValue(value any) any {
	if value == nil {
		return nil
	}
	switch typed := value.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64,
		json.Number:
		return typed
	case map[string]any:
		return cloneMap(typed)
	}

	source := reflect.ValueOf(value)
	switch source.Kind() {
	case reflect.Map:
		if source.IsNil() || source.Type().Key().Kind() != reflect.String {
			return value
		}
		clone := reflect.MakeMapWithSize(source.Type(), source.Len())
		iter := source.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), cloneIntoType(iter.Value(), source.Type().Elem()))
		}
		return clone.Interface()
	case reflect.Slice:
		if source.IsNil() {
			return value
		}
		clone := reflect.MakeSlice(source.Type(), source.Len(), source.Len())
		for i := 0; i < source.Len(); i++ {
			clone.Index(i).Set(cloneIntoType(source.Index(i), source.Type().Elem()))
		}
		return clone.Interface()
	default:
		return value
	}
}

func cloneIntoType(value reflect.Value, target reflect.Type) reflect.Value {
	if !value.IsValid() || (value.Kind() == reflect.Interface && value.IsNil()) {
		return reflect.Zero(target)
	}
	cloned := cloneValue(value.Interface())
	if cloned == nil {
		return reflect.Zero(target)
	}
	out := reflect.ValueOf(cloned)
	if out.Type().AssignableTo(target) {
		return out
	}
	if out.Type().ConvertibleTo(target) {
		return out.Convert(target)
	}
	return value
}
