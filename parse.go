package newick

import (
	"io"
	"strconv"
	"strings"
)

// Reader corresponds to the state necessary to read trees from Newick
// formatted input.
type Reader struct {
	src io.Reader
	sc  *scanner
}

// NewReader returns a reader ready for reading trees from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: r}
}

// Parse reads a single tree from a Newick string.
func Parse(s string) (*Tree, error) {
	return NewReader(strings.NewReader(s)).ReadTree()
}

// ReadAll returns all of the Newick trees in the source input. The first
// error that occurs is returned with no trees. The error is never io.EOF.
func (r *Reader) ReadAll() ([]*Tree, error) {
	trees := make([]*Tree, 0)
	for {
		tree, err := r.ReadTree()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// ReadTree reads a single tree from the source input. If the end of the
// input is reached, then a nil Tree is returned with io.EOF as the error.
func (r *Reader) ReadTree() (*Tree, error) {
	if r.sc == nil {
		data, err := io.ReadAll(r.src)
		if err != nil {
			return nil, err
		}
		r.sc = newScanner(stripComments(string(data)))
	}
	if !r.sc.more() {
		return nil, io.EOF
	}
	root, err := parseNode(r.sc)
	if err != nil {
		return nil, err
	}
	if err := r.sc.endTree(); err != nil {
		return nil, err
	}
	return &Tree{Root: root}, nil
}

// parseNode parses one node production: either a parenthesized descendant
// list with an optional trailing label and weight, or a leaf label with an
// optional weight.
func parseNode(sc *scanner) (*Node, error) {
	tok, ok, err := sc.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sc.errorf(sc.pos, "expected a descendant list or a label")
	}

	switch {
	case tok.Kind == TokenSymbol && tok.Text == "(":
		return parseInternal(sc)
	case tok.Kind == TokenLabel:
		n := &Node{Name: tok.Text}
		if err := parseOptionalWeight(sc, n); err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, sc.errorf(sc.pos, "unexpected %q at the start of a node", tok.Text)
}

// parseInternal parses the remainder of an internal node, after its
// opening '(' has been consumed.
func parseInternal(sc *scanner) (*Node, error) {
	n := &Node{}
	for {
		child, err := parseNode(sc)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)

		pk, ok, err := sc.peek()
		if err != nil {
			return nil, err
		}
		if !ok || pk.Kind != TokenSymbol || pk.Text != "," {
			break
		}
		sc.next()
	}

	tok, ok, err := sc.next()
	if err != nil {
		return nil, err
	}
	if !ok || tok.Kind != TokenSymbol || tok.Text != ")" {
		return nil, sc.errorf(sc.pos, "expected ')' to close a descendant list")
	}

	// An internal node may be followed by a label, a weight, or both.
	pk, ok, err := sc.peek()
	if err != nil {
		return nil, err
	}
	if !ok {
		return n, nil
	}
	switch pk.Kind {
	case TokenWeight:
		sc.next()
		if err := setWeight(sc, n, pk.Text); err != nil {
			return nil, err
		}
	case TokenLabel:
		sc.next()
		n.Name = pk.Text
		if err := parseOptionalWeight(sc, n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func parseOptionalWeight(sc *scanner, n *Node) error {
	pk, ok, err := sc.peek()
	if err != nil {
		return err
	}
	if !ok || pk.Kind != TokenWeight {
		return nil
	}
	sc.next()
	return setWeight(sc, n, pk.Text)
}

func setWeight(sc *scanner, n *Node, text string) error {
	length, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return sc.errorf(sc.pos, "invalid branch length %q", text)
	}
	n.Length = length
	return nil
}

// stripComments removes all bracketed comment regions ([...], non-nested)
// from Newick text.
func stripComments(s string) string {
	if !strings.ContainsRune(s, '[') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inComment := false
	for i := 0; i < len(s); i++ {
		switch {
		case inComment:
			if s[i] == ']' {
				inComment = false
			}
		case s[i] == '[':
			inComment = true
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
