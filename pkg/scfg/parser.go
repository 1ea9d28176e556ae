package scfg

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chazu/scfg/pkg/shellwords"
)

// ErrUnexpectedClosingBrace reports a } line at a nesting level with no
// open block.
var ErrUnexpectedClosingBrace = errors.New("unexpected '}'")

// ParseError reports a failure while parsing a document, carrying the
// 1-based physical line number where the problem was detected. The
// underlying cause is available through errors.Is and errors.As: an
// unterminated quote unwraps to shellwords.ErrMissingQuote, a block left
// open at end of input unwraps to io.ErrUnexpectedEOF, and a stray
// closing brace unwraps to ErrUnexpectedClosingBrace.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing error at line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads an scfg document from r. Parsing is all or nothing: any
// failure discards the partially built tree and returns a *ParseError.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	p := &parser{br: bufio.NewReader(r), opts: opts}
	doc, closingBrace, err := p.readBlock()
	if err != nil {
		return nil, err
	}
	if closingBrace {
		return nil, &ParseError{Line: p.line, Err: ErrUnexpectedClosingBrace}
	}
	return doc, nil
}

// ParseString parses an scfg document from a string.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// ParseFile parses the scfg document stored at path.
func ParseFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, opts...)
}

type parser struct {
	br   *bufio.Reader
	opts []Option
	line int // 1-based, counts every read attempt
}

// readBlock reads directives until a closing brace line or end of input.
// The returned bool is true when the block ended on a closing brace and
// false when it ended on EOF; the caller decides which of the two is an
// error at its nesting level.
func (p *parser) readBlock() (*Document, bool, error) {
	block := NewDocument(p.opts...)

	for {
		p.line++
		line, err := p.br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, false, &ParseError{Line: p.line, Err: err}
		}
		if line == "" {
			// reached EOF
			return block, false, nil
		}

		trimmed := strings.TrimSpace(line)
		words, werr := shellwords.Split(trimmed)
		if werr != nil {
			return nil, false, &ParseError{Line: p.line, Err: werr}
		}
		if len(words) == 0 {
			// blank line or comment
			continue
		}

		lastByte := trimmed[len(trimmed)-1]
		if len(words) == 1 && lastByte == '}' {
			// the line is a literal '}', end of block
			return block, true, nil
		}

		// A trailing { opens a child block, but only when it was written
		// unquoted: a token spelled "{" or '{' is an ordinary word.
		hasChild := words[len(words)-1] == "{" && lastByte == '{'

		var name string
		var dir *Directive
		if hasChild {
			words = words[:len(words)-1]
			if len(words) > 0 {
				name = words[0]
				words = words[1:]
			}
			child, closingBrace, err := p.readBlock()
			if err != nil {
				return nil, false, err
			}
			if !closingBrace {
				return nil, false, &ParseError{Line: p.line, Err: io.ErrUnexpectedEOF}
			}
			dir = &Directive{params: words, child: child, ordering: block.ordering}
		} else {
			name = words[0]
			dir = &Directive{params: words[1:], ordering: block.ordering}
		}
		block.addDirective(name, dir)
	}
}
