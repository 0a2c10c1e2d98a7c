package mdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorMovement(t *testing.T) {
	tree := MustParse("- a\n- b\n")
	c := tree.Walk()
	assert.Equal(t, 0, c.DescendantIndex())
	assert.False(t, c.GotoParent())
	assert.False(t, c.GotoNextSibling())

	require.True(t, c.GotoFirstChild())
	assert.Equal(t, KindList, c.Kind())
	assert.Equal(t, 2, c.ChildCount())

	require.True(t, c.GotoFirstChild())
	assert.Equal(t, KindListItem, c.Kind())
	first := c.DescendantIndex()

	require.True(t, c.GotoNextSibling())
	assert.Equal(t, KindListItem, c.Kind())
	assert.False(t, c.HasNextSibling())
	assert.False(t, c.GotoNextSibling(), "no third item")

	require.True(t, c.GotoParent())
	assert.Equal(t, KindList, c.Kind())

	require.True(t, c.GotoLastChild())
	assert.NotEqual(t, first, c.DescendantIndex())
}

func TestCursorCopiesAreIndependent(t *testing.T) {
	tree := MustParse("para one\n\npara two")
	c := tree.Walk()
	require.True(t, c.GotoFirstChild())

	lookahead := c
	require.True(t, lookahead.GotoNextSibling())
	assert.NotEqual(t, c.DescendantIndex(), lookahead.DescendantIndex())
	assert.Equal(t, 1, c.DescendantIndex())
}

func TestCursorGotoDescendant(t *testing.T) {
	tree := MustParse("# Heading\n\ntext")
	c := tree.Walk()
	require.True(t, c.GotoDescendant(4))
	assert.Equal(t, KindText, c.Kind())
	assert.Equal(t, "text", c.Text())

	// A saved index restores on a fresh cursor over the same tree.
	fresh := tree.Walk()
	require.True(t, fresh.GotoDescendant(c.DescendantIndex()))
	assert.Equal(t, c.Node(), fresh.Node())

	assert.False(t, c.GotoDescendant(tree.Len()))
	assert.False(t, c.GotoDescendant(-1))
	assert.Equal(t, 4, c.DescendantIndex(), "failed moves stay put")
}

func TestCursorIsLast(t *testing.T) {
	tree := MustParse("first\n\nsecond")
	c := tree.Walk()
	assert.True(t, c.IsLast(), "root is on the right edge")

	require.True(t, c.GotoFirstChild())
	assert.False(t, c.IsLast())
	require.True(t, c.GotoFirstChild())
	assert.False(t, c.IsLast(), "text inside a non-final paragraph")

	require.True(t, c.GotoParent())
	require.True(t, c.GotoNextSibling())
	require.True(t, c.GotoFirstChild())
	assert.True(t, c.IsLast())
}

func TestCursorChildrenAndContains(t *testing.T) {
	tree := MustParse("a *b* c")
	c := tree.Walk()
	require.True(t, c.GotoFirstChild())

	children := c.Children()
	require.Len(t, children, 3)
	assert.Equal(t, KindText, children[0].Kind())
	assert.Equal(t, KindEmphasis, children[1].Kind())
	assert.Equal(t, KindText, children[2].Kind())

	assert.True(t, c.Contains(children[1].DescendantIndex()))
	assert.True(t, c.Contains(c.DescendantIndex()))
	assert.False(t, children[0].Contains(children[2].DescendantIndex()))
	assert.Empty(t, children[0].Children())
}
