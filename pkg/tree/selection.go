package tree

import (
	"nodeforest/pkg/models"
)

// PropagateSelection swaps in updated for the node carrying the same id and
// forces updated.State.Selected onto every descendant of that node. The
// descendants are taken from the node already in the forest; updated's own
// Children are ignored.
//
// When no node matches, a copy of the root list is returned with found set
// to false.
func PropagateSelection(forest []*models.Node, updated *models.Node) ([]*models.Node, bool) {
	if updated == nil {
		return copyNodes(forest), false
	}
	selected := updated.State.Selected
	return apply(forest, updated.ID, func(siblings []*models.Node, i int) []*models.Node {
		n := updated.ShallowCopy()
		n.Children = cascadeSelected(siblings[i].Children, selected)
		out := copyNodes(siblings)
		out[i] = n
		return out
	})
}

// cascadeSelected copies nodes and all their descendants with Selected set.
// Missing children become an empty list.
func cascadeSelected(nodes []*models.Node, selected bool) []*models.Node {
	onPath := make(map[*models.Node]struct{})
	var walk func(nodes []*models.Node, depth int) []*models.Node
	walk = func(nodes []*models.Node, depth int) []*models.Node {
		out := make([]*models.Node, 0, len(nodes))
		if depth >= MaxDepth {
			return out
		}
		for _, n := range nodes {
			if n == nil {
				continue
			}
			if _, loop := onPath[n]; loop {
				continue
			}
			c := n.ShallowCopy()
			c.State = n.State.Clone()
			c.State.Selected = selected
			onPath[n] = struct{}{}
			c.Children = walk(n.Children, depth+1)
			delete(onPath, n)
			out = append(out, c)
		}
		return out
	}
	return walk(nodes, 0)
}
