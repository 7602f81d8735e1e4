package newick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leaf returns the named leaf node of the tree, failing the test when it
// is absent or not a leaf.
func leaf(t *testing.T, tree *Tree, name string) *Node {
	t.Helper()
	n := tree.FindNode(name)
	require.NotNil(t, n, "leaf %q not found", name)
	require.True(t, n.IsLeaf(), "%q is not a leaf", name)
	return n
}

func TestAddRemoveChild(t *testing.T) {
	parent := &Node{Name: "p"}
	child := &Node{Name: "c"}

	parent.AddChild(child)
	require.Len(t, parent.Children, 1)
	assert.Same(t, parent, child.Parent)

	parent.RemoveChild(child)
	assert.Empty(t, parent.Children)
	assert.Nil(t, child.Parent)

	// Removing a non-child is a no-op.
	parent.RemoveChild(&Node{Name: "stranger"})
	assert.Empty(t, parent.Children)
}

func TestAncestry(t *testing.T) {
	tree := mustParse(t, "((A:1,B:2)ab:1,(C:3,D:4)cd:2);")
	a := leaf(t, tree, "A")
	c := leaf(t, tree, "C")
	ab := tree.FindNode("ab")
	root := tree.Root

	assert.True(t, root.IsAncestorOf(a))
	assert.True(t, ab.IsAncestorOf(a))
	assert.False(t, ab.IsAncestorOf(c))
	assert.True(t, a.IsAncestorOf(a))
	assert.False(t, a.IsAncestorOf(root))
}

func TestLCA(t *testing.T) {
	tree := mustParse(t, "((A:1,B:2)ab:1,(C:3,D:4)cd:2);")
	a := leaf(t, tree, "A")
	b := leaf(t, tree, "B")
	c := leaf(t, tree, "C")
	ab := tree.FindNode("ab")

	assert.Same(t, ab, a.LCA(b))
	assert.Same(t, tree.Root, a.LCA(c))
	assert.Same(t, a, a.LCA(a))
	assert.Same(t, ab, ab.LCA(b))

	other := mustParse(t, "(X,Y);")
	assert.Nil(t, a.LCA(other.Root.Children[0]))
}

func TestDistances(t *testing.T) {
	tree := mustParse(t, "((A:1,B:2)ab:1,(C:3,D:4)cd:2);")
	a := leaf(t, tree, "A")
	c := leaf(t, tree, "C")
	root := tree.Root

	assert.Equal(t, 0.0, a.DistanceToAncestor(a))
	assert.Equal(t, 2.0, a.DistanceToAncestor(root))
	assert.Equal(t, 5.0, c.DistanceToAncestor(root))

	assert.Equal(t, 0, a.EdgesToAncestor(a))
	assert.Equal(t, 2, a.EdgesToAncestor(root))
	assert.Equal(t, 4, a.EdgesToNode(c))
	assert.Equal(t, 2, a.EdgesToNode(leaf(t, tree, "B")))
}

func TestDescendantsPreorder(t *testing.T) {
	tree := mustParse(t, "((A,B)ab,(C,D)cd);")
	var names []string
	for _, n := range tree.Root.Descendants() {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"ab", "A", "B", "cd", "C", "D"}, names)
}

func TestLeaves(t *testing.T) {
	tree := mustParse(t, "((A,B)ab,(C,D)cd);")
	var names []string
	for _, n := range tree.Root.Leaves() {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, names)

	single := &Node{Name: "solo"}
	assert.Equal(t, []*Node{single}, single.Leaves())
}

func TestTaxa(t *testing.T) {
	tree := mustParse(t, "((Zebra,Ant)in1,(Moth,Ant)in2);")

	assert.Equal(t, []string{"Ant", "Ant", "Moth", "Zebra"}, tree.Taxa())
	assert.Equal(t,
		[]string{"Ant", "Ant", "Moth", "Zebra", "in1", "in2"},
		tree.Root.Taxa(true))
}

func TestReorderScenario(t *testing.T) {
	tree := mustParse(t, "(B,(A,D),C);")
	tree.Reorder()
	assert.Equal(t, "((A,D),B,C);", tree.String())

	// Reorder is idempotent.
	tree.Reorder()
	assert.Equal(t, "((A,D),B,C);", tree.String())
}

func TestReverseEdge(t *testing.T) {
	tree := mustParse(t, "((A:1,B:2)ab:3,C:4);")
	ab := tree.FindNode("ab")
	oldRoot := tree.Root

	ab.ReverseEdge()

	assert.Nil(t, ab.Parent)
	assert.True(t, ab.IsAncestorOf(oldRoot))
	assert.Same(t, ab, oldRoot.Parent)

	// The reversed edge takes ab's old length; ab's own is zeroed.
	assert.Equal(t, 3.0, oldRoot.Length)
	assert.Equal(t, 0.0, ab.Length)

	// C is still reachable, now through the former root.
	assert.Equal(t, []string{"A", "B", "C"}, ab.Taxa(false))
}

func TestProgrammaticBuild(t *testing.T) {
	tree := New()
	left := &Node{Name: "L", Length: 1}
	right := &Node{Name: "R", Length: 2}
	tree.Root.AddChild(left)
	tree.Root.AddChild(right)

	assert.Equal(t, "(L:1,R:2);", tree.String())
	assert.Equal(t, []string{"L", "R"}, tree.Taxa())
}
