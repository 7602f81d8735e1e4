// Package align reads FASTA-formatted sequence alignments far enough to
// harvest their header lines. Its product is a name-to-annotation map
// that feeds the renaming operations of the newick package: headers of
// the form ">id annotation..." become id -> annotation entries.
package align

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/TuftsBCB/seq"
)

// A Reader reads named sequences from FASTA encoded input.
type Reader struct {
	buf        *bufio.Reader
	line       int
	nextHeader []byte
}

// NewReader returns a reader ready for reading sequences from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		buf:  bufio.NewReader(r),
		line: 1,
	}
}

// ReadAll will read all entries in the FASTA input and return them as a
// slice. If an error is encountered, processing is stopped, and the
// error is returned.
func (r *Reader) ReadAll() ([]seq.Sequence, error) {
	sequences := make([]seq.Sequence, 0, 100)
	for {
		s, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		sequences = append(sequences, s)
	}
	return sequences, nil
}

// Read will read the next entry in the FASTA input. The sequence name is
// the full header line with the leading '>' and surrounding whitespace
// trimmed. Residues may be letters, '*', '-' or '.'; anything else is an
// error. Blank lines are ignored wherever they occur. When the input is
// exhausted, an empty sequence is returned with io.EOF.
func (r *Reader) Read() (seq.Sequence, error) {
	s := seq.Sequence{}
	seenHeader := false

	// The previous Read may have already consumed this entry's header.
	if r.nextHeader != nil {
		s.Name = trimHeader(r.nextHeader)
		r.nextHeader = nil
		seenHeader = true
	}
	for {
		line, err := r.buf.ReadBytes('\n')
		if err == io.EOF {
			if len(line) == 0 {
				if seenHeader {
					return s, nil
				}
				return seq.Sequence{}, io.EOF
			}
		} else if err != nil {
			return seq.Sequence{}, err
		}
		line = bytes.TrimSpace(line)

		if len(line) == 0 {
			r.line++
			continue
		}

		if !seenHeader {
			if line[0] != '>' {
				return seq.Sequence{},
					fmt.Errorf("Expected '>' on line %d, got '%c'.",
						r.line, line[0])
			}
			s.Name = trimHeader(line)
			seenHeader = true
			r.line++
			continue
		} else if line[0] == '>' {
			// The next entry has begun; keep its header for later.
			r.nextHeader = line
			r.line++
			return s, nil
		}

		for _, b := range line {
			residue, ok := translate(b)
			if !ok {
				return seq.Sequence{},
					fmt.Errorf("Invalid character '%c' on line %d.",
						b, r.line)
			}
			s.Residues = append(s.Residues, residue)
		}
		r.line++
	}
}

// Annotations scans FASTA input and returns a map from each entry's
// identifier (the first whitespace-delimited header field) to the rest
// of its header line. Headers with no annotation text are skipped.
func Annotations(r io.Reader) (map[string]string, error) {
	sequences, err := NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	annotations := make(map[string]string, len(sequences))
	for _, s := range sequences {
		fields := strings.Fields(s.Name)
		if len(fields) < 2 {
			continue
		}
		annotations[fields[0]] = strings.Join(fields[1:], " ")
	}
	return annotations, nil
}

func translate(b byte) (seq.Residue, bool) {
	switch {
	case b >= 'a' && b <= 'z':
		return seq.Residue(b &^ 0x20), true
	case b >= 'A' && b <= 'Z':
		return seq.Residue(b), true
	case b == '*' || b == '-' || b == '.':
		return seq.Residue(b), true
	}
	return 0, false
}

func trimHeader(line []byte) string {
	return string(bytes.TrimSpace(bytes.TrimLeft(line, ">")))
}
