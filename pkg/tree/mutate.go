package tree

import (
	"fmt"

	"nodeforest/pkg/models"
)

// Locate finds the node with the given id anywhere in the forest and returns
// it together with its ancestry.
func Locate(forest []*models.Node, id int) (models.Row, bool) {
	var (
		row   models.Row
		found bool
	)
	visit(forest, false, func(n *models.Node, parents []int) bool {
		if n.ID != id {
			return true
		}
		row = models.Row{Node: n, Parents: parents, Deepness: len(parents)}
		found = true
		return false
	})
	return row, found
}

// Find returns the node with the given id as stored in the forest.
func Find(forest []*models.Node, id int) (*models.Node, bool) {
	row, ok := Locate(forest, id)
	if !ok {
		return nil, false
	}
	return row.Node, true
}

// Replace substitutes the node with the given id, keeping its position among
// its siblings.
func Replace(forest []*models.Node, id int, node *models.Node) ([]*models.Node, bool) {
	return apply(forest, id, func(siblings []*models.Node, i int) []*models.Node {
		out := copyNodes(siblings)
		out[i] = node
		return out
	})
}

// Delete removes the node with the given id and its whole subtree.
func Delete(forest []*models.Node, id int) ([]*models.Node, bool) {
	return apply(forest, id, func(siblings []*models.Node, i int) []*models.Node {
		out := make([]*models.Node, 0, len(siblings)-1)
		out = append(out, siblings[:i]...)
		return append(out, siblings[i+1:]...)
	})
}

// AddChild appends child under the node with id parentID. The child's
// ParentID is set to parentID and the parent is marked expanded so that the
// new node is visible right away.
func AddChild(forest []*models.Node, parentID int, child *models.Node) ([]*models.Node, bool) {
	c := child.ShallowCopy()
	c.ParentID = parentID
	if c.Children == nil {
		c.Children = make([]*models.Node, 0)
	}
	return apply(forest, parentID, func(siblings []*models.Node, i int) []*models.Node {
		p := siblings[i].ShallowCopy()
		p.State = p.State.With(models.PropExpanded, true)
		p.Children = AppendRecord(p.Children, c)
		out := copyNodes(siblings)
		out[i] = p
		return out
	})
}

// SetStateProp sets one state prop on the node with the given id.
func SetStateProp(forest []*models.Node, id int, prop string, value any) ([]*models.Node, bool) {
	return apply(forest, id, func(siblings []*models.Node, i int) []*models.Node {
		n := siblings[i].ShallowCopy()
		n.State = n.State.With(prop, value)
		out := copyNodes(siblings)
		out[i] = n
		return out
	})
}

// Move re-parents the subtree rooted at id under newParentID. An empty parent
// reference moves it to the top level.
func Move(forest []*models.Node, id, newParentID int) ([]*models.Node, error) {
	row, ok := Locate(forest, id)
	if !ok {
		return nil, fmt.Errorf("node %d: %w", id, ErrNodeNotFound)
	}
	node := row.Node.ShallowCopy()

	if models.IsEmptyRef(newParentID) {
		out, _ := Delete(forest, id)
		node.ParentID = newParentID
		return AppendRecord(out, node), nil
	}

	target, ok := Locate(forest, newParentID)
	if !ok {
		return nil, fmt.Errorf("parent %d: %w", newParentID, ErrNodeNotFound)
	}
	if newParentID == id || containsID(target.Parents, id) {
		return nil, fmt.Errorf("move %d under %d: %w", id, newParentID, ErrCyclicParent)
	}

	out, _ := Delete(forest, id)
	out, _ = AddChild(out, newParentID, node)
	return out, nil
}

// apply locates id and rebuilds the forest along its ancestry. fn receives
// the target's sibling list and the target's index in it and returns the new
// sibling list. Nothing outside the ancestry is copied.
func apply(forest []*models.Node, id int, fn func(siblings []*models.Node, i int) []*models.Node) ([]*models.Node, bool) {
	row, ok := Locate(forest, id)
	if !ok {
		return copyNodes(forest), false
	}
	return rewrite(forest, row.Parents, id, fn), true
}

func rewrite(level []*models.Node, path []int, id int, fn func([]*models.Node, int) []*models.Node) []*models.Node {
	if len(path) == 0 {
		i := IndexByID(level, id)
		if i < 0 {
			return copyNodes(level)
		}
		return fn(level, i)
	}
	i := IndexByID(level, path[0])
	if i < 0 {
		return copyNodes(level)
	}
	parent := level[i].ShallowCopy()
	parent.Children = rewrite(parent.Children, path[1:], id, fn)
	out := copyNodes(level)
	out[i] = parent
	return out
}

func copyNodes(nodes []*models.Node) []*models.Node {
	out := make([]*models.Node, len(nodes))
	copy(out, nodes)
	return out
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
