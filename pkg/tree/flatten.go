package tree

import (
	"nodeforest/pkg/models"
)

// MaxDepth bounds every traversal. Forests built by this package never get
// near it; it only matters for hand-built forests that loop.
const MaxDepth = 10000

// visitFunc is called for every node reached by visit. Returning false stops
// the traversal.
type visitFunc func(n *models.Node, parents []int) bool

// visit walks the forest depth-first, parents before children. When gated is
// set, the children of collapsed nodes are skipped. A node that already sits
// on the current path is not entered again.
func visit(forest []*models.Node, gated bool, fn visitFunc) {
	onPath := make(map[*models.Node]struct{})
	var walk func(nodes []*models.Node, parents []int) bool
	walk = func(nodes []*models.Node, parents []int) bool {
		if len(parents) >= MaxDepth {
			return true
		}
		for _, n := range nodes {
			if n == nil {
				continue
			}
			if _, loop := onPath[n]; loop {
				continue
			}
			if !fn(n, parents) {
				return false
			}
			if !n.HasChildren() || (gated && !n.State.Expanded) {
				continue
			}
			next := make([]int, len(parents)+1)
			copy(next, parents)
			next[len(parents)] = n.ID

			onPath[n] = struct{}{}
			ok := walk(n.Children, next)
			delete(onPath, n)
			if !ok {
				return false
			}
		}
		return true
	}
	walk(forest, []int{})
}

// FlattenChildren collects the children of every node, depth-first: a node's
// children are appended before the traversal moves into them. Roots are never
// part of the result.
func FlattenChildren(forest []*models.Node) []*models.Node {
	out := make([]*models.Node, 0)
	onPath := make(map[*models.Node]struct{})
	var walk func(nodes []*models.Node, depth int)
	walk = func(nodes []*models.Node, depth int) {
		if depth >= MaxDepth {
			return
		}
		for _, n := range nodes {
			if n == nil {
				continue
			}
			if _, loop := onPath[n]; loop {
				continue
			}
			out = append(out, n.Children...)
			onPath[n] = struct{}{}
			walk(n.Children, depth+1)
			delete(onPath, n)
		}
	}
	walk(forest, 0)
	return out
}

// FlattenVisible returns the rows a collapsible tree view would show: every
// root, and the children of every expanded node.
func FlattenVisible(forest []*models.Node) []models.Row {
	return flattenRows(forest, true)
}

// FlattenAll returns a row for every node of the forest regardless of its
// expanded flag.
func FlattenAll(forest []*models.Node) []models.Row {
	return flattenRows(forest, false)
}

func flattenRows(forest []*models.Node, gated bool) []models.Row {
	rows := make([]models.Row, 0)
	visit(forest, gated, func(n *models.Node, parents []int) bool {
		rows = append(rows, models.Row{
			Node:     n.ShallowCopy(),
			Parents:  parents,
			Deepness: len(parents),
		})
		return true
	})
	return rows
}
