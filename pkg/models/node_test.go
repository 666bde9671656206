package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsEmptyRef(t *testing.T) {
	require.True(t, IsEmptyRef(0))
	require.True(t, IsEmptyRef(-1))
	require.False(t, IsEmptyRef(1))

	require.True(t, (&Node{ID: 1}).IsRoot())
	require.False(t, (&Node{ID: 2, ParentID: 1}).IsRoot())
}

func TestStateGetWith(t *testing.T) {
	s := State{}

	s2 := s.With(PropSelected, true).With("prop", 3)
	require.False(t, s.Selected)
	require.Nil(t, s.Props)

	v, ok := s2.Get(PropSelected)
	require.True(t, ok)
	require.Equal(t, true, v)

	v, ok = s2.Get("prop")
	require.True(t, ok)
	require.Equal(t, 3, v)

	_, ok = s2.Get("missing")
	require.False(t, ok)

	s3 := s2.With(PropExpanded, "true").With(PropSelected, "false")
	require.True(t, s3.Expanded)
	require.False(t, s3.Selected)
	require.True(t, s2.Selected)
}

func TestNodeClone(t *testing.T) {
	n := &Node{
		ID:      1,
		Content: "root",
		State:   State{Props: map[string]any{"list": []any{map[string]any{"k": "v"}}}},
		Extra:   map[string]string{"a": "b"},
		Children: []*Node{
			{ID: 2, ParentID: 1, Children: []*Node{}},
		},
	}

	c := n.Clone()
	require.Equal(t, n, c)
	require.NotSame(t, n.Children[0], c.Children[0])

	c.Extra["a"] = "changed"
	c.State.Props["list"].([]any)[0].(map[string]any)["k"] = "changed"
	c.Children[0].Content = "changed"

	require.Equal(t, "b", n.Extra["a"])
	require.Equal(t, "v", n.State.Props["list"].([]any)[0].(map[string]any)["k"])
	require.Empty(t, n.Children[0].Content)
}

func TestNodeShallowCopy(t *testing.T) {
	n := &Node{ID: 1, Children: []*Node{{ID: 2}}}
	c := n.ShallowCopy()
	require.NotSame(t, n, c)
	require.Same(t, n.Children[0], c.Children[0])

	require.Nil(t, (*Node)(nil).ShallowCopy())
	require.Nil(t, (*Node)(nil).Clone())
}
