package tree_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"nodeforest/pkg/models"
	"nodeforest/pkg/tree"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	list := []*models.Node{flat(1, 0), flat(2, 1), flat(3, 1), flat(4, 2)}

	forest, err := tree.Build(list)
	require.NoError(t, err)
	require.Len(t, forest, 1)

	root := forest[0]
	require.Equal(t, 1, root.ID)
	require.Equal(t, []int{2, 3}, nodeIDs(root.Children))
	require.Equal(t, []int{4}, nodeIDs(root.Children[0].Children))
	require.Empty(t, root.Children[0].Children[0].Children)
	require.NotNil(t, root.Children[0].Children[0].Children)
	require.Empty(t, root.Children[1].Children)
	require.NotNil(t, root.Children[1].Children)
}

func TestBuildKeepsInputOrder(t *testing.T) {
	t.Parallel()

	list := []*models.Node{flat(10, 0), flat(3, 10), flat(20, -1), flat(1, 10), flat(2, 0)}

	forest, err := tree.Build(list)
	require.NoError(t, err)
	require.Equal(t, []int{10, 20, 2}, nodeIDs(forest))
	require.Equal(t, []int{3, 1}, nodeIDs(forest[0].Children))
}

func TestBuildDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	in := flat(1, 0)
	in.State.Props = map[string]any{"tags": []any{"a"}}
	list := []*models.Node{in, flat(2, 1)}

	forest, err := tree.Build(list)
	require.NoError(t, err)
	require.NotSame(t, in, forest[0])
	require.Nil(t, in.Children, "input records must not gain children")

	forest[0].State.Props["tags"].([]any)[0] = "mutated"
	require.Equal(t, "a", in.State.Props["tags"].([]any)[0])
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		list []*models.Node
		want error
	}{
		{
			name: "dangling parent",
			list: []*models.Node{flat(1, 0), flat(2, 99)},
			want: tree.ErrDanglingParent,
		},
		{
			name: "duplicate key",
			list: []*models.Node{flat(1, 0), flat(1, 0)},
			want: tree.ErrDuplicateKey,
		},
		{
			name: "self parent",
			list: []*models.Node{flat(1, 0), flat(2, 2)},
			want: tree.ErrCyclicParent,
		},
		{
			name: "parent cycle",
			list: []*models.Node{flat(1, 0), flat(2, 3), flat(3, 4), flat(4, 2)},
			want: tree.ErrCyclicParent,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			forest, err := tree.Build(tc.list)
			require.Error(t, err)
			require.ErrorIs(t, err, tc.want)
			require.Nil(t, forest)
		})
	}
}

func TestBuildDanglingParentDetails(t *testing.T) {
	t.Parallel()

	_, err := tree.Build([]*models.Node{flat(5, 6)})

	var dangling *tree.DanglingParentError
	require.True(t, errors.As(err, &dangling))
	require.Equal(t, 5, dangling.Key)
	require.Equal(t, 6, dangling.Parent)
}

func TestBuildCycleDetails(t *testing.T) {
	t.Parallel()

	_, err := tree.Build([]*models.Node{flat(1, 0), flat(2, 3), flat(3, 2)})

	var cycle *tree.CycleError
	require.True(t, errors.As(err, &cycle))
	require.ElementsMatch(t, []any{2, 3}, cycle.Keys)
}

type record struct {
	Key      string
	Parent   string
	Children []*record
}

func TestTreeifyCustomSchema(t *testing.T) {
	t.Parallel()

	schema := tree.Schema[*record, string]{
		Key:      func(r *record) string { return r.Key },
		Parent:   func(r *record) string { return r.Parent },
		Children: func(r *record) *[]*record { return &r.Children },
		Clone: func(r *record) *record {
			c := *r
			return &c
		},
		IsRoot: func(parent string) bool { return parent == "" },
	}

	list := []*record{
		{Key: "docs"},
		{Key: "guide", Parent: "docs"},
		{Key: "api", Parent: "docs"},
		{Key: "intro", Parent: "guide"},
	}

	forest, err := tree.Treeify(list, schema)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	require.Equal(t, "docs", forest[0].Key)
	require.Len(t, forest[0].Children, 2)
	require.Equal(t, "intro", forest[0].Children[0].Children[0].Key)
}

func TestBuildRoundTrip(t *testing.T) {
	t.Parallel()

	list := []*models.Node{
		flat(1, 0), flat(2, 1), flat(3, 1), flat(4, 2), flat(5, 0), flat(6, 5), flat(7, 6),
	}

	forest, err := tree.Build(list)
	require.NoError(t, err)

	var nonRoots []int
	for _, n := range list {
		if !n.IsRoot() {
			nonRoots = append(nonRoots, n.ID)
		}
	}

	require.ElementsMatch(t, nonRoots, nodeIDs(tree.FlattenChildren(forest)))
	require.ElementsMatch(t, nodeIDs(list), rowIDs(tree.FlattenAll(forest)))

	for _, row := range tree.FlattenAll(forest) {
		if row.Deepness == 0 {
			continue
		}
		require.Equal(t, row.Parents[len(row.Parents)-1], row.Node.ParentID)
	}
}
