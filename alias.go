package newick

import (
	"fmt"
	"io"
)

// aliasPrefix starts every generated name; the counter after it is
// zero-padded to a fixed width.
const (
	aliasPrefix = "SEQ"
	aliasDigits = 7
)

// Alias systematically renames the tree's nodes. Every descendant of the
// root whose name is non-empty and is not a plain integer (bootstrap
// labels are left alone) is given the next name in the sequence
// SEQ0000001, SEQ0000002, ... The counter is zero-padded to 7 digits, or,
// when long is set, to the width of the longest taxon name in the tree.
//
// The returned map takes each generated alias back to the original name.
// When sink is non-nil, one "alias<TAB>original" line per renamed node is
// written to it. A node is renamed only after its line has been written,
// so on a write error the walk stops and the returned map covers exactly
// the renames already applied.
func (t *Tree) Alias(long bool, sink io.Writer) (map[string]string, error) {
	digits := aliasDigits
	if long {
		for _, name := range t.Taxa() {
			if w := len(name) - len(aliasPrefix); w > digits {
				digits = w
			}
		}
	}

	names := make(map[string]string)
	counter := 0
	for _, n := range t.Root.Descendants() {
		if n.Name == "" || plainInt(n.Name) {
			continue
		}
		counter++
		alias := fmt.Sprintf("%s%0*d", aliasPrefix, digits, counter)
		if sink != nil {
			if _, err := fmt.Fprintf(sink, "%s\t%s\n", alias, n.Name); err != nil {
				return names, err
			}
		}
		names[alias] = n.Name
		n.Name = alias
	}
	return names, nil
}

// UnAlias renames descendants by forward lookup in names: a node whose
// name is a key of the map takes the mapped value. Unmapped names are
// left untouched. The map is the one produced by Alias, taking aliases
// back to original names.
func (t *Tree) UnAlias(names map[string]string) *Tree {
	for _, n := range t.Root.Descendants() {
		if original, ok := names[n.Name]; ok {
			n.Name = original
		}
	}
	return t
}

// ReAlias renames descendants by inverse lookup in names: a node whose
// name appears as a value of the map takes the corresponding key. It
// restores the aliases of a previously un-aliased tree. Unmapped names
// are left untouched.
func (t *Tree) ReAlias(names map[string]string) *Tree {
	inverse := make(map[string]string, len(names))
	for alias, original := range names {
		inverse[original] = alias
	}
	for _, n := range t.Root.Descendants() {
		if alias, ok := inverse[n.Name]; ok {
			n.Name = alias
		}
	}
	return t
}

// plainInt reports whether s consists solely of decimal digits, the form
// of a bootstrap label stored as a node name.
func plainInt(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
