package newick

import (
	"strconv"
	"strings"
)

// A LabelMode selects where internal-node labels appear during
// serialization. Bootstrap values are written as internal node names by
// one legacy convention and as branch annotations by the other; under
// LabelSupport the name is suppressed from the label position.
type LabelMode int

const (
	// LabelName writes internal node names after the closing ')'.
	LabelName LabelMode = iota

	// LabelSupport suppresses internal node names.
	LabelSupport
)

// Tree owns the root node of a rooted tree and exposes the whole-tree
// operations. All mutating operations work in place and return the same
// tree.
type Tree struct {
	Root *Node
}

// New returns a tree rooted at an unnamed, zero-length node.
func New() *Tree {
	return &Tree{Root: &Node{}}
}

// Copy returns a deep copy of the tree.
func (t *Tree) Copy() *Tree {
	return &Tree{Root: t.Root.copy()}
}

// String serializes the tree with branch lengths shown and internal
// labels written as names.
func (t *Tree) String() string {
	return t.Newick(true, LabelName)
}

// Newick serializes the tree to Newick notation, ending with ';'. Branch
// lengths are written as ':<value>' only when lengths is set and the
// length is non-zero.
func (t *Tree) Newick(lengths bool, mode LabelMode) string {
	var b strings.Builder
	writeNode(&b, t.Root, lengths, mode)
	b.WriteByte(';')
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, lengths bool, mode LabelMode) {
	if n.IsLeaf() {
		b.WriteString(n.Name)
	} else {
		b.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				b.WriteByte(',')
			}
			writeNode(b, c, lengths, mode)
		}
		b.WriteByte(')')
		if mode == LabelName {
			b.WriteString(n.Name)
		}
	}
	if lengths && n.Length != 0 {
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(n.Length, 'g', -1, 64))
	}
}

// Taxa returns the sorted leaf names of the tree.
func (t *Tree) Taxa() []string {
	return t.Root.Taxa(false)
}

// Reorder sorts every node's children by name, in place.
func (t *Tree) Reorder() *Tree {
	t.Root.Reorder()
	return t
}

// FindNode returns the first node, in preorder, whose name contains
// pattern as a substring, or nil when no node matches.
func (t *Tree) FindNode(pattern string) *Node {
	if strings.Contains(t.Root.Name, pattern) {
		return t.Root
	}
	for _, n := range t.Root.Descendants() {
		if strings.Contains(n.Name, pattern) {
			return n
		}
	}
	return nil
}

// Unroot converts a fully rooted (two-child) tree to the conventional
// unrooted representation with a single multifurcating root. One root
// child is merged away: its branch length is added to its sibling's and
// its children are re-parented directly under the root. A leaf is never
// the side merged away. Roots with any other child count, and trees of
// just two leaves, are left unchanged.
func (t *Tree) Unroot() *Tree {
	root := t.Root
	if len(root.Children) != 2 {
		return t
	}
	keep, merge := root.Children[0], root.Children[1]
	if merge.IsLeaf() {
		if keep.IsLeaf() {
			// A two-leaf tree has no internal side to merge away;
			// removing a leaf would lose a taxon.
			return t
		}
		keep, merge = merge, keep
	}
	keep.Length += merge.Length
	root.RemoveChild(merge)
	for _, c := range append([]*Node(nil), merge.Children...) {
		merge.RemoveChild(c)
		root.AddChild(c)
	}
	return t
}

// Reroot re-roots the tree on the edge above target: the tree is
// unrooted, the structure above target is re-oriented to hang off
// target's former parent, the severed branch length is split evenly
// between the two sides, and a new unnamed zero-length root is created
// with exactly those two children. Rerooting at the current root, or at
// a node no longer attached after unrooting, leaves the tree unchanged.
func (t *Tree) Reroot(target *Node) *Tree {
	if target == nil || target == t.Root {
		return t
	}
	t.Unroot()
	if target.Parent == nil {
		return t
	}
	p := target.Parent
	p.RemoveChild(target)
	p.ReverseEdge()

	half := target.Length / 2
	target.Length = half
	p.Length = half

	root := &Node{}
	root.AddChild(target)
	root.AddChild(p)
	t.Root = root
	return t
}

// MostDistantLeaves returns the pair of leaves with the greatest
// patristic distance between them, and that distance. Every unordered
// leaf pair is evaluated. A single-leaf tree yields that leaf twice with
// distance 0.
func (t *Tree) MostDistantLeaves() (a, b *Node, dist float64) {
	leaves := t.Root.Leaves()
	if len(leaves) == 1 {
		return leaves[0], leaves[0], 0
	}
	for i := 0; i < len(leaves); i++ {
		for j := i + 1; j < len(leaves); j++ {
			d := patristic(leaves[i], leaves[j])
			if a == nil || d > dist {
				a, b, dist = leaves[i], leaves[j], d
			}
		}
	}
	return a, b, dist
}

// patristic returns the sum of branch lengths on the path between two
// nodes of the same tree, routed through their least common ancestor.
func patristic(a, b *Node) float64 {
	lca := a.LCA(b)
	return a.DistanceToAncestor(lca) + b.DistanceToAncestor(lca)
}

// DistanceMatrix returns the pairwise patristic distance between all
// leaves, keyed by taxon name on both axes. The diagonal is 0.
func (t *Tree) DistanceMatrix() map[string]map[string]float64 {
	leaves := t.Root.Leaves()
	m := make(map[string]map[string]float64, len(leaves))
	for _, l := range leaves {
		m[l.Name] = make(map[string]float64, len(leaves))
	}
	for i := 0; i < len(leaves); i++ {
		m[leaves[i].Name][leaves[i].Name] = 0
		for j := i + 1; j < len(leaves); j++ {
			d := patristic(leaves[i], leaves[j])
			m[leaves[i].Name][leaves[j].Name] = d
			m[leaves[j].Name][leaves[i].Name] = d
		}
	}
	return m
}

// MidpointRoot re-roots the tree at the point equidistant between its two
// most distant leaves. The tree is unrooted first. When the greatest
// leaf-to-leaf distance is 0 (a star with zero lengths, say) the tree is
// left unchanged.
func (t *Tree) MidpointRoot() *Tree {
	t.Unroot()
	a, b, dist := t.MostDistantLeaves()
	if dist == 0 {
		return t
	}

	far := a
	if b.DistanceToAncestor(t.Root) > a.DistanceToAncestor(t.Root) {
		far = b
	}

	// Walk rootward from the farther leaf until the accumulated length
	// reaches the midpoint; that node's parent edge straddles it.
	traveled := 0.0
	node := far
	for node.Parent != nil && traveled+node.Length < dist/2 {
		traveled += node.Length
		node = node.Parent
	}
	traveled += node.Length

	p := node.Parent
	if p == nil {
		return t
	}
	p.RemoveChild(node)
	p.ReverseEdge()

	excess := traveled - dist/2
	p.Length = excess
	node.Length -= excess

	root := &Node{}
	root.AddChild(node)
	root.AddChild(p)
	t.Root = root
	return t
}
