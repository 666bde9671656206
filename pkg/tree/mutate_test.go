package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nodeforest/pkg/models"
	"nodeforest/pkg/tree"
)

func TestDelete(t *testing.T) {
	t.Parallel()

	forest := []*models.Node{branch(1, leaf(2), leaf(3))}

	out, found := tree.Delete(forest, 2)
	require.True(t, found)
	require.Equal(t, []*models.Node{branch(1, leaf(3))}, out)
	require.Len(t, forest[0].Children, 2, "input must not change")
	require.Same(t, forest[0].Children[1], out[0].Children[0])
}

func TestDeleteRootAndSubtree(t *testing.T) {
	t.Parallel()

	forest := sampleForest()

	out, found := tree.Delete(forest, 1)
	require.True(t, found)
	require.Equal(t, []int{5}, rowIDs(tree.FlattenAll(out)))

	out, found = tree.Delete(forest, 2)
	require.True(t, found)
	require.Equal(t, []int{1, 3, 5}, rowIDs(tree.FlattenAll(out)))
}

func TestReplace(t *testing.T) {
	t.Parallel()

	forest := sampleForest()
	repl := &models.Node{ID: 4, ParentID: 2, Content: "new"}

	out, found := tree.Replace(forest, 4, repl)
	require.True(t, found)
	require.Same(t, repl, out[0].Children[0].Children[0])
	require.Same(t, forest[0].Children[1], out[0].Children[1])
	require.Same(t, forest[1], out[1])
	require.NotSame(t, forest[0], out[0])
	require.Empty(t, forest[0].Children[0].Children[0].Content)
}

func TestReplaceKeepsSiblingOrder(t *testing.T) {
	t.Parallel()

	forest := []*models.Node{leaf(1), leaf(2), leaf(3)}

	out, found := tree.Replace(forest, 2, &models.Node{ID: 20})
	require.True(t, found)
	require.Equal(t, []int{1, 20, 3}, nodeIDs(out))
}

func TestAddChild(t *testing.T) {
	t.Parallel()

	forest := sampleForest()
	child := &models.Node{ID: 9, Content: "new"}

	out, found := tree.AddChild(forest, 2, child)
	require.True(t, found)

	parent, ok := tree.Find(out, 2)
	require.True(t, ok)
	require.True(t, parent.State.Expanded)
	require.Equal(t, []int{4, 9}, nodeIDs(parent.Children))

	added := parent.Children[1]
	require.Equal(t, 2, added.ParentID)
	require.NotNil(t, added.Children)
	require.Zero(t, child.ParentID, "the given child must not be mutated")

	old, _ := tree.Find(forest, 2)
	require.False(t, old.State.Expanded)
	require.Len(t, old.Children, 1)

	row, ok := tree.Locate(out, 9)
	require.True(t, ok)
	require.Equal(t, []int{1, 2}, row.Parents)
	require.Equal(t, 2, row.Deepness)
}

func TestAddChildMakesNodeVisible(t *testing.T) {
	t.Parallel()

	forest := []*models.Node{leaf(1)}
	out, _ := tree.AddChild(forest, 1, &models.Node{ID: 2})
	require.Equal(t, []int{1, 2}, rowIDs(tree.FlattenVisible(out)))
}

func TestMutatorsNotFound(t *testing.T) {
	t.Parallel()

	forest := sampleForest()

	testCases := []struct {
		name string
		run  func() ([]*models.Node, bool)
	}{
		{name: "replace", run: func() ([]*models.Node, bool) { return tree.Replace(forest, 99, leaf(99)) }},
		{name: "delete", run: func() ([]*models.Node, bool) { return tree.Delete(forest, 99) }},
		{name: "add", run: func() ([]*models.Node, bool) { return tree.AddChild(forest, 99, leaf(100)) }},
		{name: "set prop", run: func() ([]*models.Node, bool) { return tree.SetStateProp(forest, 99, "x", 1) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, found := tc.run()
			require.False(t, found)
			require.Equal(t, forest, out)
		})
	}
}

func TestSetStateProp(t *testing.T) {
	t.Parallel()

	forest := sampleForest()

	out, found := tree.SetStateProp(forest, 4, "prop", "value")
	require.True(t, found)

	n, _ := tree.Find(out, 4)
	v, ok := n.State.Get("prop")
	require.True(t, ok)
	require.Equal(t, "value", v)

	old, _ := tree.Find(forest, 4)
	require.Nil(t, old.State.Props)

	out, _ = tree.SetStateProp(out, 1, models.PropExpanded, true)
	require.True(t, out[0].State.Expanded)
}

func TestMove(t *testing.T) {
	t.Parallel()

	forest := sampleForest()

	out, err := tree.Move(forest, 2, 5)
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 5, 2, 4}, rowIDs(tree.FlattenAll(out)))

	moved, _ := tree.Find(out, 2)
	require.Equal(t, 5, moved.ParentID)

	out, err = tree.Move(forest, 4, 0)
	require.NoError(t, err)
	require.Equal(t, []int{1, 5, 4}, nodeIDs(out))
}

func TestMoveErrors(t *testing.T) {
	t.Parallel()

	forest := sampleForest()

	_, err := tree.Move(forest, 42, 1)
	require.ErrorIs(t, err, tree.ErrNodeNotFound)

	_, err = tree.Move(forest, 2, 42)
	require.ErrorIs(t, err, tree.ErrNodeNotFound)

	_, err = tree.Move(forest, 1, 4)
	require.ErrorIs(t, err, tree.ErrCyclicParent)

	_, err = tree.Move(forest, 2, 2)
	require.ErrorIs(t, err, tree.ErrCyclicParent)
}
