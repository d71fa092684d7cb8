package comb

import "fmt"

// SyntaxError reports malformed term text.
type SyntaxError struct {
	Text string // the full input being parsed
	Pos  int    // byte offset of the offending character
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in %q at %d: %s", e.Text, e.Pos, e.Msg)
}

type Parser struct {
	input string
}

func NewParser(input string) *Parser {
	return &Parser{input: input}
}

// Parse reads the whole input as a single term.
func (p *Parser) Parse() (Term, error) {
	if len(p.input) == 0 {
		return nil, p.errorf(0, "empty term")
	}
	return p.parseSpan(0, len(p.input))
}

// parseSpan parses input[start:end] as a sequence of atoms folded
// left-associatively into applications.
func (p *Parser) parseSpan(start, end int) (Term, error) {
	var term Term
	for i := start; i < end; i++ {
		ch := p.input[i]
		var atom Term
		switch {
		case isLetter(ch):
			atom = Leaf{Sym: ch}
		case ch == '(':
			j, err := p.matchParen(i, end)
			if err != nil {
				return nil, err
			}
			if j == i+1 {
				return nil, p.errorf(i, "empty group")
			}
			sub, err := p.parseSpan(i+1, j)
			if err != nil {
				return nil, err
			}
			atom = sub
			i = j
		case ch == ')':
			return nil, p.errorf(i, "unexpected ')'")
		default:
			return nil, p.errorf(i, "invalid character %q", ch)
		}

		if term == nil {
			term = atom
		} else {
			term = App{Fun: term, Arg: atom}
		}
	}
	return term, nil
}

// matchParen returns the index of the ')' closing the '(' at open.
func (p *Parser) matchParen(open, end int) (int, error) {
	depth := 0
	for j := open; j < end; j++ {
		switch p.input[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j, nil
			}
		}
	}
	return 0, p.errorf(open, "unterminated '('")
}

func (p *Parser) errorf(pos int, format string, args ...interface{}) error {
	return &SyntaxError{Text: p.input, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// Parse parses a combinator term from a string.
func Parse(input string) (Term, error) {
	p := NewParser(input)
	return p.Parse()
}

// MustParse is like Parse but panics on malformed input. It is meant for
// text that is well-formed by construction.
func MustParse(input string) Term {
	t, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return t
}
