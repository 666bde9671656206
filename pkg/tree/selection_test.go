package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nodeforest/pkg/models"
	"nodeforest/pkg/tree"
)

func TestPropagateSelectionCascade(t *testing.T) {
	t.Parallel()

	forest := []*models.Node{branch(1, leaf(2))}
	updated := &models.Node{ID: 1, State: models.State{Selected: true}}

	out, found := tree.PropagateSelection(forest, updated)
	require.True(t, found)
	require.True(t, out[0].State.Selected)
	require.True(t, out[0].Children[0].State.Selected)
	require.False(t, forest[0].Children[0].State.Selected, "input must not change")
}

func TestPropagateSelectionSubtreeOnly(t *testing.T) {
	t.Parallel()

	forest := sampleForest()
	forest[0].Children[1].State.Selected = true // node 3

	updated := forest[0].Children[0].ShallowCopy() // node 2
	updated.State.Selected = true
	updated.Content = "picked"
	updated.Children = nil

	out, found := tree.PropagateSelection(forest, updated)
	require.True(t, found)

	target := out[0].Children[0]
	require.Equal(t, "picked", target.Content)
	require.True(t, target.State.Selected)
	require.Equal(t, []int{4}, nodeIDs(target.Children), "children come from the existing node")
	require.True(t, target.Children[0].State.Selected)

	// everything outside the target's subtree is shared
	require.Same(t, forest[0].Children[1], out[0].Children[1])
	require.Same(t, forest[1], out[1])
	require.False(t, out[0].State.Selected)
}

func TestPropagateSelectionDeselectIsUnconditional(t *testing.T) {
	t.Parallel()

	a := branch(1, branch(2, leaf(3)), leaf(4))
	for _, row := range tree.FlattenAll([]*models.Node{a}) {
		require.False(t, row.Node.State.Selected)
	}
	a.Children[0].State.Selected = true
	a.Children[0].Children[0].State.Selected = true

	out, found := tree.PropagateSelection([]*models.Node{a}, &models.Node{ID: 1})
	require.True(t, found)
	for _, row := range tree.FlattenAll(out) {
		require.False(t, row.Node.State.Selected, "node %d", row.Node.ID)
	}
}

func TestPropagateSelectionKeepsOtherState(t *testing.T) {
	t.Parallel()

	child := leaf(2)
	child.State.Expanded = true
	child.State.Props = map[string]any{"color": "red"}
	forest := []*models.Node{branch(1, child)}

	out, _ := tree.PropagateSelection(forest, &models.Node{ID: 1, State: models.State{Selected: true}})
	got := out[0].Children[0]
	require.True(t, got.State.Expanded)
	require.Equal(t, "red", got.State.Props["color"])

	got.State.Props["color"] = "blue"
	require.Equal(t, "red", child.State.Props["color"])
}

func TestPropagateSelectionNotFound(t *testing.T) {
	t.Parallel()

	forest := sampleForest()
	out, found := tree.PropagateSelection(forest, &models.Node{ID: 404, State: models.State{Selected: true}})
	require.False(t, found)
	require.Equal(t, forest, out)

	out[0] = nil
	require.NotNil(t, forest[0])
}

func TestPropagateSelectionMissingChildrenBecomeEmpty(t *testing.T) {
	t.Parallel()

	forest := []*models.Node{{ID: 1, Children: []*models.Node{{ID: 2}}}}
	out, _ := tree.PropagateSelection(forest, &models.Node{ID: 1, State: models.State{Selected: true}})
	require.NotNil(t, out[0].Children[0].Children)
	require.Empty(t, out[0].Children[0].Children)
}
