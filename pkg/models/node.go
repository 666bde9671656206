// Package models holds the node records shared by the tree engine and its callers.
package models

// Well-known state props.
const (
	PropSelected = "selected"
	PropExpanded = "expanded"
)

// Node is a single record of a forest. In flat form ParentID references the
// parent record; in nested form Children holds the child records.
type Node struct {
	ID       int               `json:"id"`
	ParentID int               `json:"parent_id,omitempty"`
	Content  string            `json:"content,omitempty"`
	State    State             `json:"state"`
	Extra    map[string]string `json:"extra,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// State is the open attribute bag of a node. Selected and Expanded are typed,
// everything else lives in Props.
type State struct {
	Selected bool           `json:"selected"`
	Expanded bool           `json:"expanded"`
	Props    map[string]any `json:"props,omitempty"`
}

// Row is a node as seen by the ancestry flattener.
type Row struct {
	Node     *Node `json:"node"`
	Parents  []int `json:"parents"`
	Deepness int   `json:"deepness"`
}

func NewNode(id, parentID int, content string) *Node {
	return &Node{
		ID:       id,
		ParentID: parentID,
		Content:  content,
		Children: make([]*Node, 0),
		Extra:    make(map[string]string),
	}
}

// IsEmptyRef reports whether a parent reference is absent. Zero and negative
// ids never name a record.
func IsEmptyRef(id int) bool {
	return id <= 0
}

// IsRoot reports whether the record sits at the top of its forest.
func (n *Node) IsRoot() bool {
	return IsEmptyRef(n.ParentID)
}

func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// Get returns the value of a state prop. The typed flags are reachable under
// their well-known names.
func (s State) Get(prop string) (any, bool) {
	switch prop {
	case PropSelected:
		return s.Selected, true
	case PropExpanded:
		return s.Expanded, true
	}
	v, ok := s.Props[prop]
	return v, ok
}

// With returns a copy of the state with prop set to value. A non-bool value
// for a well-known flag is stored as its truthiness.
func (s State) With(prop string, value any) State {
	out := s.Clone()
	switch prop {
	case PropSelected:
		out.Selected = truthy(value)
	case PropExpanded:
		out.Expanded = truthy(value)
	default:
		if out.Props == nil {
			out.Props = make(map[string]any, 1)
		}
		out.Props[prop] = value
	}
	return out
}

func (s State) Clone() State {
	out := State{Selected: s.Selected, Expanded: s.Expanded}
	if s.Props != nil {
		out.Props = cloneMap(s.Props)
	}
	return out
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "false" && v != "0"
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}
