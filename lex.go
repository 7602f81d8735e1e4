package newick

import (
	"fmt"
)

// A TokenKind classifies a token produced by the scanner.
type TokenKind int

const (
	// TokenSymbol is one of the structural characters '(', ')' or ','.
	TokenSymbol TokenKind = iota

	// TokenWeight is the numeric text of a branch length, without the
	// leading ':'.
	TokenWeight

	// TokenLabel is a node name, either bare or quoted. Quoted labels
	// keep their quotes.
	TokenLabel
)

// A Token is an immutable (kind, text) pair.
type Token struct {
	Kind TokenKind
	Text string
}

const (
	terminal      = ';'
	descDelimiter = ','
	descStart     = '('
	descEnd       = ')'
	quote         = '\''
	lengthStart   = ':'
)

// A ParseError describes a malformed region of Newick input. It carries
// the byte offset of the offending character and a window of the
// surrounding text for diagnostics.
type ParseError struct {
	Pos     int
	Context string
	Msg     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("newick: %s at offset %d near %q", e.Msg, e.Pos, e.Context)
}

// scanner is a forward-only tokenizer over comment-stripped Newick text.
// Lookahead of exactly one token is available through peek, which
// snapshots and restores the scan position.
type scanner struct {
	input string
	pos   int
}

func newScanner(input string) *scanner {
	return &scanner{input: input}
}

// errorf builds a ParseError at the given offset with a window of the
// surrounding input.
func (sc *scanner) errorf(pos int, format string, v ...interface{}) error {
	lo, hi := pos-15, pos+15
	if lo < 0 {
		lo = 0
	}
	if hi > len(sc.input) {
		hi = len(sc.input)
	}
	return &ParseError{
		Pos:     pos,
		Context: sc.input[lo:hi],
		Msg:     fmt.Sprintf(format, v...),
	}
}

// next returns the next token in the input. ok is false when the input is
// exhausted or the scanner has reached a statement terminator (';'),
// which next does not consume.
func (sc *scanner) next() (tok Token, ok bool, err error) {
	sc.skipSpace()
	if sc.pos >= len(sc.input) {
		return Token{}, false, nil
	}

	c := sc.input[sc.pos]
	switch c {
	case terminal:
		return Token{}, false, nil
	case descStart, descEnd, descDelimiter:
		sc.pos++
		return Token{TokenSymbol, string(c)}, true, nil
	case lengthStart:
		sc.pos++
		start := sc.pos
		for sc.pos < len(sc.input) && isWeightChar(sc.input[sc.pos]) {
			sc.pos++
		}
		if sc.pos == start {
			return Token{}, false, sc.errorf(start, "expected a branch length after ':'")
		}
		return Token{TokenWeight, sc.input[start:sc.pos]}, true, nil
	case quote:
		start := sc.pos
		sc.pos++
		for sc.pos < len(sc.input) && sc.input[sc.pos] != quote {
			sc.pos++
		}
		if sc.pos >= len(sc.input) {
			return Token{}, false, sc.errorf(start, "unterminated quoted label")
		}
		sc.pos++
		return Token{TokenLabel, sc.input[start:sc.pos]}, true, nil
	}

	start := sc.pos
	for sc.pos < len(sc.input) && !isLabelEnd(sc.input[sc.pos]) {
		sc.pos++
	}
	return Token{TokenLabel, sc.input[start:sc.pos]}, true, nil
}

// peek returns the next token without consuming it.
func (sc *scanner) peek() (tok Token, ok bool, err error) {
	saved := sc.pos
	tok, ok, err = sc.next()
	sc.pos = saved
	return tok, ok, err
}

// more reports whether another statement follows, skipping whitespace and
// statement terminators.
func (sc *scanner) more() bool {
	sc.endStatement()
	return sc.pos < len(sc.input)
}

// endTree verifies that a complete tree ends here: the next non-space
// input must be the ';' terminator or the end of input. The terminator
// is then consumed, leaving the scanner at the next statement.
func (sc *scanner) endTree() error {
	sc.skipSpace()
	if sc.pos < len(sc.input) && sc.input[sc.pos] != terminal {
		return sc.errorf(sc.pos, "expected ';' after a tree")
	}
	sc.endStatement()
	return nil
}

// endStatement advances past whitespace and any run of ';' characters.
func (sc *scanner) endStatement() {
	for sc.pos < len(sc.input) {
		c := sc.input[sc.pos]
		if c != terminal && !isSpace(c) {
			return
		}
		sc.pos++
	}
}

func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.input) && isSpace(sc.input[sc.pos]) {
		sc.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWeightChar(c byte) bool {
	return isDigit(c) || c == '.' || c == '-' || c == 'e' || c == 'E'
}

func isLabelEnd(c byte) bool {
	return c == descDelimiter || c == descStart || c == descEnd ||
		c == lengthStart || c == terminal || isSpace(c)
}

func (kind TokenKind) String() string {
	switch kind {
	case TokenSymbol:
		return "Symbol"
	case TokenWeight:
		return "Weight"
	case TokenLabel:
		return "Label"
	}
	panic(fmt.Sprintf("BUG: unknown token kind %d", int(kind)))
}

func (tok Token) String() string {
	return fmt.Sprintf("(%s, %s)", tok.Kind, tok.Text)
}
