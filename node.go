package newick

import (
	"sort"
)

// Node corresponds to a single vertex of a rooted tree. A node is a leaf
// exactly when it has no children. Internal nodes frequently have an
// empty name, or carry a bootstrap value as their name.
type Node struct {
	// The label of this node. If it's empty, then this node does not
	// have a name.
	Name string

	// The branch length of the edge connecting this node to its parent,
	// or 0 when absent and for the root.
	Length float64

	// The owning parent, or nil for the root. Used only for upward
	// traversal.
	Parent *Node

	// All children of this node, in order. Order is meaningful:
	// serialization preserves it and Reorder changes it deliberately.
	Children []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// AddChild appends child to n's children and sets its parent
// back-reference.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild detaches child from n, clearing its parent back-reference.
// Nodes that are not children of n are left alone.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// IsAncestorOf reports whether n lies on the parent chain of other. Every
// node is considered an ancestor of itself.
func (n *Node) IsAncestorOf(other *Node) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == n {
			return true
		}
	}
	return false
}

// LCA returns the least common ancestor of n and other, or nil when the
// two nodes do not belong to the same tree. LCA of a node with itself is
// the node.
func (n *Node) LCA(other *Node) *Node {
	if n.IsAncestorOf(other) {
		return n
	}
	if other.IsAncestorOf(n) {
		return other
	}
	if n.Parent == nil {
		return nil
	}
	return n.Parent.LCA(other)
}

// DistanceToAncestor returns the sum of branch lengths walking from n up
// to ancestor. The ancestor's own branch length is not included; the
// distance from a node to itself is 0. ancestor must actually be an
// ancestor of n.
func (n *Node) DistanceToAncestor(ancestor *Node) float64 {
	d := 0.0
	for cur := n; cur != nil && cur != ancestor; cur = cur.Parent {
		d += cur.Length
	}
	return d
}

// EdgesToAncestor returns the number of edges walking from n up to
// ancestor, which must actually be an ancestor of n.
func (n *Node) EdgesToAncestor(ancestor *Node) int {
	count := 0
	for cur := n; cur != nil && cur != ancestor; cur = cur.Parent {
		count++
	}
	return count
}

// EdgesToNode returns the number of edges on the path between n and
// other, routed through their least common ancestor.
func (n *Node) EdgesToNode(other *Node) int {
	lca := n.LCA(other)
	return n.EdgesToAncestor(lca) + other.EdgesToAncestor(lca)
}

// Descendants returns every node beneath n in preorder (each parent
// before its children, children left to right), excluding n itself.
func (n *Node) Descendants() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(m *Node) {
		for _, c := range m.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n)
	return out
}

// Leaves returns the leaf nodes beneath (and including) n, in preorder.
func (n *Node) Leaves() []*Node {
	if n.IsLeaf() {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// Reorder recursively sorts the children of every node beneath (and
// including) n by name, in place. Empty names, typical of internal
// nodes, sort before any non-empty name.
func (n *Node) Reorder() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return n.Children[i].Name < n.Children[j].Name
	})
	for _, c := range n.Children {
		c.Reorder()
	}
}

// Taxa returns the sorted list of leaf names beneath (and including) n.
// Duplicate names are kept with their multiplicity. When includeInternal
// is set, non-empty internal node names are merged into the same sorted
// result.
func (n *Node) Taxa(includeInternal bool) []string {
	var names []string
	var walk func(*Node)
	walk = func(m *Node) {
		if m.IsLeaf() {
			names = append(names, m.Name)
			return
		}
		if includeInternal && m.Name != "" {
			names = append(names, m.Name)
		}
		for _, c := range m.Children {
			walk(c)
		}
	}
	walk(n)
	sort.Strings(names)
	return names
}

// ReverseEdge re-orients the edge between n and its parent, and
// recursively every edge on the chain from n up to the root, so that the
// former parent chain hangs off n. Branch lengths shift down one hop:
// each former parent takes the length of the edge it used to own toward
// the root side. This is the rerooting primitive; after a full call the
// former root is a descendant of n and n has no parent.
func (n *Node) ReverseEdge() {
	p := n.Parent
	if p == nil {
		return
	}
	p.RemoveChild(n)
	if p.Parent != nil {
		p.ReverseEdge()
	}
	n.AddChild(p)
	p.Length = n.Length
	n.Length = 0
}

// copy returns a deep copy of the subtree rooted at n. The copy's parent
// is nil.
func (n *Node) copy() *Node {
	m := &Node{Name: n.Name, Length: n.Length}
	for _, c := range n.Children {
		m.AddChild(c.copy())
	}
	return m
}
