package newick

import (
	"fmt"
	"sort"
	"strings"
)

// CompareTopology compares the clade sets of two trees over the same
// taxa. Both trees are copied and unrooted before comparison, so neither
// argument is modified. Each clade is the sorted list of leaf names under
// one internal node; support values play no part in clade identity.
//
// The first result holds the clades of t absent from other, the second
// the clades of other absent from t. Trees with differing taxon sets are
// not comparable and yield an error.
func (t *Tree) CompareTopology(other *Tree) (onlyT, onlyOther [][]string, err error) {
	a := t.Copy().Unroot()
	b := other.Copy().Unroot()

	at, bt := a.Taxa(), b.Taxa()
	if !equalNames(at, bt) {
		return nil, nil, fmt.Errorf(
			"newick: trees have different taxa (%d vs %d); topologies are not comparable",
			len(at), len(bt))
	}

	ca, cb := clades(a.Root), clades(b.Root)
	return cladeDiff(ca, cb), cladeDiff(cb, ca), nil
}

// clades returns the non-leaf clades of the subtree at root, keyed by a
// canonical encoding of the sorted leaf names.
func clades(root *Node) map[string][]string {
	out := make(map[string][]string)
	nodes := append([]*Node{root}, root.Descendants()...)
	for _, n := range nodes {
		if n.IsLeaf() {
			continue
		}
		taxa := n.Taxa(false)
		out[cladeKey(taxa)] = taxa
	}
	return out
}

// cladeDiff returns the clades of a that are absent from b, in a
// deterministic order.
func cladeDiff(a, b map[string][]string) [][]string {
	keys := make([]string, 0, len(a))
	for k := range a {
		if _, ok := b[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	diff := make([][]string, len(keys))
	for i, k := range keys {
		diff[i] = a[k]
	}
	return diff
}

// cladeKey joins sorted names with a separator that cannot occur in a
// label, so that equal keys mean equal name sequences.
func cladeKey(names []string) string {
	return strings.Join(names, "\x00")
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
